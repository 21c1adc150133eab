package feed

import (
	"path/filepath"
	"testing"
	"time"
)

func TestParseRSSWithThumbnail(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item 1</title>
      <description>Test Item 1 Description</description>
      <pubDate>Tue, 02 Jan 2024 10:00:00 +0000</pubDate>
      <media:thumbnail url="https://example.com/img/a.jpg"/>
    </item>
  </channel>
</rss>`

	parser := NewParser("/cache")
	items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}

	item := items[0]
	if item.Title != "Test Item 1" {
		t.Errorf("Expected title 'Test Item 1', got: %s", item.Title)
	}
	if item.PublishedRaw != "Tue, 02 Jan 2024 10:00:00 +0000" {
		t.Errorf("Expected raw publish date to be preserved, got: %s", item.PublishedRaw)
	}

	want := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	if item.PublishedAt == nil || !item.PublishedAt.Equal(want) {
		t.Errorf("Expected publish date %v, got: %v", want, item.PublishedAt)
	}

	if item.ImageURL != "https://example.com/img/a.jpg" {
		t.Errorf("Expected image URL 'https://example.com/img/a.jpg', got: %s", item.ImageURL)
	}
	wantPath := filepath.Join("/cache", "example.com", "img", "a.jpg")
	if item.ImagePath != wantPath {
		t.Errorf("Expected image path %s, got: %s", wantPath, item.ImagePath)
	}

	if item.Digest == "" {
		t.Error("Expected content digest to be computed")
	}
}

func TestParseDublinCoreDateFallback(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>DC Item</title>
      <description>DC Item Description</description>
      <dc:date>2023-05-01T08:00:00+00:00</dc:date>
    </item>
  </channel>
</rss>`

	parser := NewParser("/cache")
	items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}

	want := time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)
	if items[0].PublishedAt == nil || !items[0].PublishedAt.Equal(want) {
		t.Errorf("Expected publish date %v, got: %v", want, items[0].PublishedAt)
	}
}

func TestParseNoDate(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Undated Item</title>
      <description>Undated Item Description</description>
    </item>
  </channel>
</rss>`

	parser := NewParser("/cache")
	items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].PublishedAt != nil {
		t.Errorf("Expected nil publish date, got: %v", items[0].PublishedAt)
	}
	if items[0].ImageURL != "" || items[0].ImagePath != "" {
		t.Error("Expected no image for item without media thumbnail")
	}
}

func TestParseMissingContentSentinelDigest(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Title Only</title>
    </item>
  </channel>
</rss>`

	parser := NewParser("/cache")
	items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}
	if items[0].Digest != "" {
		t.Errorf("Expected empty sentinel digest for item without description, got: %s", items[0].Digest)
	}
}

func TestParseMalformedDocument(t *testing.T) {
	parser := NewParser("/cache")
	if _, err := parser.Run([]byte("not a feed")); err == nil {
		t.Error("Expected error for malformed document")
	}
}
