package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/bigendian/newswire/app/config"
)

// Fetcher retrieves and parses every configured source concurrently. Each
// source is isolated: an unreachable endpoint or malformed document is
// logged and contributes zero items without affecting the others.
type Fetcher struct {
	client    *http.Client
	parser    *Parser
	userAgent string
	workers   int
}

func NewFetcher(client *http.Client, parser *Parser, userAgent string, workers int) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		client:    client,
		parser:    parser,
		userAgent: userAgent,
		workers:   workers,
	}
}

// Run fetches all sources and returns the flat collection of normalized
// items from every source that succeeded.
func (f *Fetcher) Run(ctx context.Context, sources []config.Source) []Item {
	results := make([][]Item, len(sources))
	sem := make(chan struct{}, f.workers)
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, source config.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			items, err := f.fetchSource(ctx, source)
			if err != nil {
				slog.Warn("Feed fetch failed", "source", source.Name, "url", source.URL, "error", err)
				return
			}

			slog.Debug("Feed fetched", "source", source.Name, "items", len(items))
			results[i] = items
		}(i, source)
	}

	wg.Wait()

	var all []Item
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

func (f *Fetcher) fetchSource(ctx context.Context, source config.Source) ([]Item, error) {
	data, err := f.fetch(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	items, err := f.parser.Run(data)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
