// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/exhibition-curator/internal/httputil"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// clevelandAPIBase is the Cleveland Museum of Art Open Access API root.
// Declared as a var so tests can substitute an httptest server.
var clevelandAPIBase = types.DefaultClevelandURL

const clevelandSource = "Cleveland Museum of Art"

// ClevelandBackend queries the Cleveland Museum of Art Open Access API,
// which returns full records from a single search request.
type ClevelandBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// Name returns the backend identifier.
func (b *ClevelandBackend) Name() string { return "cleveland" }

// Search queries the artworks endpoint and returns records with an image
// and a title containing query.
func (b *ClevelandBackend) Search(ctx context.Context, query string) ([]types.Item, error) {
	reqURL := b.base() + "/artworks?" + url.Values{"q": {query}}.Encode()

	var cr clevelandResponse
	if err := httputil.GetJSON(ctx, b.Client, reqURL, b.UserAgent, &cr); err != nil {
		return nil, fmt.Errorf("Cleveland search: %w", err)
	}
	if cr.Data == nil {
		return nil, fmt.Errorf("Cleveland search: %w",
			&httputil.UpstreamFormatError{URL: reqURL, Err: errors.New(`missing "data" array`)})
	}

	needle := strings.ToLower(query)
	var items []types.Item
	for _, art := range *cr.Data {
		if art.Title == "" || !strings.Contains(strings.ToLower(art.Title), needle) {
			continue
		}
		item, ok := art.toItem()
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *ClevelandBackend) base() string {
	if b.BaseURL != "" {
		return strings.TrimRight(b.BaseURL, "/")
	}
	return clevelandAPIBase
}

// toItem normalizes an artwork; ok is false when it has no web image.
func (a clevelandArtwork) toItem() (types.Item, bool) {
	if a.Images == nil || a.Images.Web == nil || a.Images.Web.URL == "" {
		return types.Item{}, false
	}

	artist := types.Unknown
	if len(a.Creators) > 0 && strings.TrimSpace(a.Creators[0].Description) != "" {
		artist = a.Creators[0].Description
	}

	// The earliest-year field sorts better than the free text, which is
	// kept for display.
	dateSrc := a.CreationDateEarliest
	if dateSrc == "" {
		dateSrc = a.CreationDate
	}
	rawDate := string(a.CreationDate)
	if rawDate == "" {
		rawDate = string(a.CreationDateEarliest)
	}
	if rawDate == "" {
		rawDate = types.Unknown
	}

	return types.Item{
		ID:      "cleveland-" + strconv.FormatInt(a.ID, 10),
		Title:   a.Title,
		Artist:  artist,
		Image:   a.Images.Web.URL,
		Source:  clevelandSource,
		Date:    NormalizeYear(string(dateSrc)),
		RawDate: rawDate,
	}, true
}

// Cleveland Open Access API JSON structures.
type clevelandResponse struct {
	Data *[]clevelandArtwork `json:"data"`
}

type clevelandArtwork struct {
	ID                   int64              `json:"id"`
	Title                string             `json:"title"`
	Creators             []clevelandCreator `json:"creators"`
	Images               *clevelandImages   `json:"images"`
	CreationDate         flexDate           `json:"creation_date"`
	CreationDateEarliest flexDate           `json:"creation_date_earliest"`
}

type clevelandCreator struct {
	Description string `json:"description"`
}

type clevelandImages struct {
	Web *clevelandImage `json:"web"`
}

type clevelandImage struct {
	URL string `json:"url"`
}
