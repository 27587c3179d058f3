// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for exhibition-curator.
// Item is the normalized artwork record every source backend produces;
// the config structs mirror the keys of exhibition-curator.yaml.
package types

import (
	"fmt"
	"strings"
)

// Unknown is the display value used when a source omits the artist or
// the date text.
const Unknown = "Unknown"

// Item represents one artwork returned by a source backend, normalized to
// the shape shared by every source.
type Item struct {
	// ID is "<source prefix>-<native id>" (e.g. "met-436535"), unique
	// across sources within one search.
	ID string `json:"id" yaml:"id"`

	// Title is the artwork title. Backends never emit untitled items.
	Title string `json:"title" yaml:"title"`

	// Artist is the primary creator, or Unknown.
	Artist string `json:"artist" yaml:"artist"`

	// Image is the URL of a displayable image. Backends never emit items
	// without one.
	Image string `json:"image" yaml:"image"`

	// Source is the human-readable name of the originating collection.
	Source string `json:"source" yaml:"source"`

	// Date is a best-effort year used only for sorting; nil when the
	// source date could not be reduced to a number.
	Date *int `json:"date" yaml:"date"`

	// RawDate is the date text as the source reported it, or Unknown.
	RawDate string `json:"rawDate" yaml:"rawDate"`
}

// Year returns the item's year and whether it is known.
func (it Item) Year() (int, bool) {
	if it.Date == nil {
		return 0, false
	}
	return *it.Date, true
}

// SortMode selects the order of merged search results.
type SortMode string

const (
	SortTitle  SortMode = "title"
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
)

// ParseSortMode converts user input into a SortMode. An empty string
// yields SortTitle.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortTitle:
		return SortTitle, nil
	case SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q: use title, newest, or oldest", s)
	}
}
