// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/pdiddy/exhibition-curator/internal/httputil"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// metAPIBase is The Met Collection API root. Declared as a var so tests
// can substitute an httptest server.
var metAPIBase = types.DefaultMetBaseURL

const metSource = "The Met"

// MetBackend queries The Met Collection API. The search endpoint returns
// only object IDs, so each candidate needs its own detail request.
type MetBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
	// MaxObjects caps the number of detail requests per search (default 30).
	MaxObjects int
}

// Name returns the backend identifier.
func (b *MetBackend) Name() string { return "met" }

// Search finds object IDs matching query, fetches every object
// concurrently, and returns the ones with an image and a matching title.
func (b *MetBackend) Search(ctx context.Context, query string) ([]types.Item, error) {
	base := b.base()
	params := url.Values{
		"q":         {query},
		"hasImages": {"true"},
	}

	var sr metSearchResponse
	if err := httputil.GetJSON(ctx, b.Client, base+"/search?"+params.Encode(), b.UserAgent, &sr); err != nil {
		return nil, fmt.Errorf("Met search: %w", err)
	}

	ids := sr.ObjectIDs
	limit := b.MaxObjects
	if limit <= 0 {
		limit = types.DefaultMetMaxObjects
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	objects, err := b.fetchObjects(ctx, base, ids)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var items []types.Item
	for _, obj := range objects {
		if obj.PrimaryImageSmall == "" || obj.Title == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(obj.Title), needle) {
			continue
		}
		items = append(items, obj.toItem())
	}
	return items, nil
}

// fetchObjects requests every object detail concurrently and waits for
// all of them to settle. The first failure in ID order is returned. The
// API answers unknown IDs with a JSON error document; those decode to an
// empty object, which the image filter drops.
func (b *MetBackend) fetchObjects(ctx context.Context, base string, ids []int) ([]metObject, error) {
	objects := make([]metObject, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		i, id := i, id
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := base + "/objects/" + strconv.Itoa(id)
			if err := httputil.GetJSONAnyStatus(ctx, b.Client, u, b.UserAgent, &objects[i]); err != nil {
				errs[i] = fmt.Errorf("Met object %d: %w", id, err)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return objects, nil
}

func (b *MetBackend) base() string {
	if b.BaseURL != "" {
		return strings.TrimRight(b.BaseURL, "/")
	}
	return metAPIBase
}

func (o metObject) toItem() types.Item {
	artist := strings.TrimSpace(o.ArtistDisplayName)
	if artist == "" {
		artist = types.Unknown
	}
	rawDate := o.ObjectDate
	if rawDate == "" {
		rawDate = types.Unknown
	}
	return types.Item{
		ID:      "met-" + strconv.Itoa(o.ObjectID),
		Title:   o.Title,
		Artist:  artist,
		Image:   o.PrimaryImageSmall,
		Source:  metSource,
		Date:    NormalizeYear(o.ObjectDate),
		RawDate: rawDate,
	}
}

// Met Collection API JSON structures.
type metSearchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

type metObject struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	ObjectDate        string `json:"objectDate"`
}
