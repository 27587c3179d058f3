// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// FormatTable writes items as a human-readable table to w. Rows are
// numbered from offset+1 so a page keeps its position in the full list.
func FormatTable(items []types.Item, offset int, w io.Writer) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No artworks found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-44s  %-24s  %-14s  %s\n",
		"#", "Title", "Artist", "Date", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, it := range items {
		fmt.Fprintf(w, "%-4d  %-44s  %-24s  %-14s  %s\n",
			offset+i+1, truncate(it.Title, 44), truncate(it.Artist, 24), truncate(it.RawDate, 14), it.Source)
	}
}

// FormatJSON writes items as indented JSON to w.
func FormatJSON(items []types.Item, w io.Writer) error {
	if items == nil {
		items = []types.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// FormatYAML writes items as a YAML sequence to w.
func FormatYAML(items []types.Item, w io.Writer) error {
	if items == nil {
		items = []types.Item{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
