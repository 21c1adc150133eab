package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/bigendian/newswire/app/config"
	"github.com/bigendian/newswire/app/feed"
	"github.com/bigendian/newswire/app/images"
	"github.com/bigendian/newswire/app/store"
)

// ErrRunInProgress is returned when a cycle is requested while another
// holds the run lock.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// Pipeline executes one fetch-merge-persist cycle: poll every source,
// normalize the entries, cache their images, merge into the durable store
// and return the full collection. Per-source and per-image failures are
// absorbed; store and lock failures fail the cycle.
type Pipeline struct {
	sources []config.Source
	fetcher *feed.Fetcher
	images  *images.Cache
	store   *store.Store
	lock    *flock.Flock
}

func New(cacheDir string, sources []config.Source, fetcher *feed.Fetcher, imageCache *images.Cache, st *store.Store) *Pipeline {
	return &Pipeline{
		sources: sources,
		fetcher: fetcher,
		images:  imageCache,
		store:   st,
		lock:    flock.New(filepath.Join(cacheDir, "newswire.lock")),
	}
}

// Run executes one full cycle and returns the merged collection newest
// first, undated items last. Runs are serialized through a file lock; a
// second invocation while one is in flight fails with ErrRunInProgress.
func (p *Pipeline) Run(ctx context.Context) ([]feed.Item, error) {
	locked, err := p.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer p.lock.Unlock()

	fresh := p.fetcher.Run(ctx, p.sources)

	p.images.Run(ctx, imageURLs(fresh))

	existing, err := p.store.Load()
	if err != nil {
		return nil, err
	}

	merged := store.Merge(existing, fresh)

	if err := p.store.Save(merged); err != nil {
		return nil, err
	}

	slog.Info("Pipeline run completed",
		"sources", len(p.sources),
		"fetched", len(fresh),
		"stored", len(merged))

	return feed.NewestFirst(merged), nil
}

// imageURLs collects the distinct image URLs of a batch.
func imageURLs(items []feed.Item) []string {
	seen := make(map[string]struct{}, len(items))
	var urls []string
	for _, item := range items {
		if item.ImageURL == "" {
			continue
		}
		if _, ok := seen[item.ImageURL]; ok {
			continue
		}
		seen[item.ImageURL] = struct{}{}
		urls = append(urls, item.ImageURL)
	}
	return urls
}
