package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/bigendian/newswire/app/images"
)

// pubDateLayout matches the RFC-822-style date used by RSS pubDate
// elements, e.g. "Tue, 02 Jan 2024 10:00:00 +0000".
const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

type Parser struct {
	gofeedParser *gofeed.Parser
	cacheDir     string
}

// NewParser creates a parser that derives image cache paths under cacheDir.
func NewParser(cacheDir string) *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
		cacheDir:     cacheDir,
	}
}

// Run parses feed data and normalizes every entry into an Item.
func (p *Parser) Run(data []byte) ([]Item, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		items = append(items, p.normalizeItem(entry))
	}

	return items, nil
}

func (p *Parser) normalizeItem(entry *gofeed.Item) Item {
	item := Item{
		Title:        entry.Title,
		Description:  entry.Description,
		PublishedRaw: entry.Published,
	}

	item.PublishedAt = parsePublished(entry)

	if imageURL := extractImageURL(entry); imageURL != "" {
		item.ImageURL = imageURL
		item.ImagePath = images.PathFor(p.cacheDir, imageURL)
	}

	digest, err := ComputeDigest(item.Title, item.Description)
	if err != nil {
		// Entry is kept with an empty sentinel digest.
		slog.Debug("Digest unavailable", "title", item.Title, "error", err)
	}
	item.Digest = digest

	return item
}

// parsePublished extracts the publish date from the entry's native pubDate
// string, falling back to the first Dublin Core date parsed as an ISO-8601
// offset timestamp. Returns nil when neither yields a parseable date.
func parsePublished(entry *gofeed.Item) *time.Time {
	if entry.Published != "" {
		if t, err := time.Parse(pubDateLayout, entry.Published); err == nil {
			return &t
		}
	}

	if dc := entry.DublinCoreExt; dc != nil && len(dc.Date) > 0 {
		if t, err := time.Parse(time.RFC3339, dc.Date[0]); err == nil {
			return &t
		}
	}

	return nil
}

// extractImageURL returns the url attribute of the entry's first
// media:thumbnail extension, or "" when absent at any level.
func extractImageURL(entry *gofeed.Item) string {
	thumbnails := entry.Extensions["media"]["thumbnail"]
	if len(thumbnails) == 0 {
		return ""
	}
	return thumbnails[0].Attrs["url"]
}
