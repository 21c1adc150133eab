package feed

import (
	"sort"
	"time"
)

// Item is the durable representation of one news entry. Empty Title or
// Description means the field was absent from the source entry.
type Item struct {
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	PublishedRaw string     `json:"published_raw,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	ImagePath    string     `json:"image_path,omitempty"`
	Digest       string     `json:"digest,omitempty"`
}

// Identity is the deduplication key for an Item. It covers the normalized
// but pre-parsed fields only; derived fields (Digest, ImagePath, the parsed
// PublishedAt) are deliberately excluded so that dedup equality and digest
// hashing stay two separate operations.
type Identity struct {
	Title        string
	Description  string
	PublishedRaw string
}

// Identity returns the deduplication key for the item.
func (i Item) Identity() Identity {
	return Identity{
		Title:        i.Title,
		Description:  i.Description,
		PublishedRaw: i.PublishedRaw,
	}
}

// Before orders items by publish date. Items without a date sort before all
// dated items. Equal and absent dates report false, so a stable sort keeps
// insertion order as the tie-break.
func (i Item) Before(other Item) bool {
	switch {
	case i.PublishedAt == nil && other.PublishedAt == nil:
		return false
	case i.PublishedAt == nil:
		return true
	case other.PublishedAt == nil:
		return false
	default:
		return i.PublishedAt.Before(*other.PublishedAt)
	}
}

// SortOldestFirst sorts items in place, oldest first with undated items
// leading. The sort is stable, ties keep their insertion order.
func SortOldestFirst(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Before(items[b])
	})
}

// NewestFirst returns a copy of items in reverse-chronological order, with
// undated items after all dated ones.
func NewestFirst(items []Item) []Item {
	ordered := make([]Item, len(items))
	copy(ordered, items)
	SortOldestFirst(ordered)
	for l, r := 0, len(ordered)-1; l < r; l, r = l+1, r-1 {
		ordered[l], ordered[r] = ordered[r], ordered[l]
	}
	return ordered
}
