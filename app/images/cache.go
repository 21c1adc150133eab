package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PathFor maps an image URL to its cache location by stripping the URL
// scheme and joining the remainder onto the cache root. Two items sharing
// an image URL resolve to the same path.
func PathFor(root, imageURL string) string {
	trimmed := strings.TrimPrefix(imageURL, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return filepath.Join(root, filepath.FromSlash(trimmed))
}

// Cache is a write-once image cache rooted at a single directory. Files
// already present are never re-downloaded or re-validated.
type Cache struct {
	root      string
	client    *http.Client
	userAgent string
	workers   int
}

func NewCache(root string, client *http.Client, userAgent string, workers int) *Cache {
	if workers < 1 {
		workers = 1
	}
	return &Cache{
		root:      root,
		client:    client,
		userAgent: userAgent,
		workers:   workers,
	}
}

// Run downloads every URL whose cache file does not exist yet. Downloads
// proceed concurrently; a failure on one URL is logged and never aborts
// the rest of the batch.
func (c *Cache) Run(ctx context.Context, urls []string) {
	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup

	for _, imageURL := range urls {
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := c.fetchImage(ctx, imageURL); err != nil {
				slog.Warn("Image fetch failed", "url", imageURL, "error", err)
			}
		}(imageURL)
	}

	wg.Wait()
}

func (c *Cache) fetchImage(ctx context.Context, imageURL string) error {
	path := PathFor(c.root, imageURL)
	if _, err := os.Stat(path); err == nil {
		slog.Debug("Image already cached", "url", imageURL, "path", path)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	if err := writeImage(path, img); err != nil {
		return fmt.Errorf("failed to store image: %w", err)
	}

	slog.Debug("Image cached", "url", imageURL, "path", path)
	return nil
}

// writeImage re-encodes the image and writes it through a temporary file
// so a failed write never leaves a partial cache entry behind.
func writeImage(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".img-*")
	if err != nil {
		return err
	}

	if err := encode(tmp, path, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// encode picks the output format from the target path's extension, JPEG
// when the extension is unknown.
func encode(w io.Writer, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	default:
		return jpeg.Encode(w, img, nil)
	}
}
