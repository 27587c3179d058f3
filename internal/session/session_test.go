// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/exhibition-curator/internal/search"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// stubBackend returns canned items per query. Queries listed in gates
// block until their channel is closed; started receives the query once
// Search is entered.
type stubBackend struct {
	name    string
	byQuery map[string][]types.Item
	err     error
	gates   map[string]chan struct{}
	started chan string

	mu    sync.Mutex
	calls int
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Search(ctx context.Context, query string) ([]types.Item, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.started != nil {
		b.started <- query
	}
	if gate, ok := b.gates[query]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.byQuery[query], nil
}

func (b *stubBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func year(y int) *int { return &y }

func newSession(backends ...search.Backend) *Session {
	logger, _ := test.NewNullLogger()
	return New(backends, Options{PageSize: 10, Logger: logger})
}

func titles(items []types.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func sunBackends() (*stubBackend, *stubBackend) {
	met := &stubBackend{name: "met", byQuery: map[string][]types.Item{
		"sun": {{ID: "met-1", Title: "Sunrise"}},
	}}
	cle := &stubBackend{name: "cleveland", byQuery: map[string][]types.Item{
		"sun": {{ID: "cleveland-1", Title: "Sundial", Date: year(1700)}},
	}}
	return met, cle
}

func TestSearchAppliesSortedResults(t *testing.T) {
	met, cle := sunBackends()
	s := newSession(met, cle)

	snap, applied := s.Search(context.Background(), "sun")
	require.True(t, applied)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "sun", snap.Query)
	assert.Equal(t, types.SortTitle, snap.Sort)
	assert.Equal(t, []string{"Sundial", "Sunrise"}, titles(snap.Page.Visible))
	assert.Equal(t, 1, snap.Page.Number)
	assert.Equal(t, uint64(1), snap.Generation)
}

func TestSetSortResortsWithoutRefetch(t *testing.T) {
	met, cle := sunBackends()
	s := newSession(met, cle)
	s.Search(context.Background(), "sun")

	snap := s.SetSort(types.SortNewest)
	assert.Equal(t, []string{"Sundial", "Sunrise"}, titles(snap.Page.Visible))
	assert.Equal(t, types.SortNewest, snap.Sort)
	assert.Equal(t, 1, met.callCount())
	assert.Equal(t, 1, cle.callCount())
}

func TestSetSortMatchesFreshSearch(t *testing.T) {
	// Equal dates: order must follow backend order, not the previous sort.
	met := &stubBackend{name: "met", byQuery: map[string][]types.Item{
		"vase": {{ID: "met-1", Title: "Vase B", Date: year(1700)}},
	}}
	cle := &stubBackend{name: "cleveland", byQuery: map[string][]types.Item{
		"vase": {{ID: "cleveland-1", Title: "Vase A", Date: year(1700)}},
	}}

	resorted := newSession(met, cle)
	resorted.Search(context.Background(), "vase")
	got := resorted.SetSort(types.SortOldest)

	fresh := newSession(met, cle)
	fresh.SetSort(types.SortOldest)
	want, _ := fresh.Search(context.Background(), "vase")

	assert.Equal(t, titles(want.Page.Visible), titles(got.Page.Visible))
	assert.Equal(t, []string{"Vase B", "Vase A"}, titles(got.Page.Visible))
}

func TestSearchFailureShowsGenericError(t *testing.T) {
	var many []types.Item
	for i := 0; i < 20; i++ {
		many = append(many, types.Item{ID: fmt.Sprintf("cleveland-%d", i), Title: fmt.Sprintf("Sun %02d", i)})
	}
	met := &stubBackend{name: "met", err: errors.New("connection refused")}
	cle := &stubBackend{name: "cleveland", byQuery: map[string][]types.Item{"sun": many}}
	s := newSession(met, cle)

	snap, applied := s.Search(context.Background(), "sun")
	require.True(t, applied)
	assert.Equal(t, search.GenericFailureMessage, snap.Error)
	assert.Empty(t, snap.Page.Visible)
	assert.Equal(t, 0, snap.Page.TotalPages)
	assert.Equal(t, []string{"met"}, snap.FailedSources)
}

func TestSearchPartialPolicy(t *testing.T) {
	met := &stubBackend{name: "met", err: errors.New("connection refused")}
	_, cle := sunBackends()
	logger, _ := test.NewNullLogger()
	s := New([]search.Backend{met, cle}, Options{Policy: search.Partial, Logger: logger})

	snap, _ := s.Search(context.Background(), "sun")
	assert.Empty(t, snap.Error)
	assert.Equal(t, []string{"Sundial"}, titles(snap.Page.Visible))
	assert.Equal(t, []string{"met"}, snap.FailedSources)
}

func TestStaleSearchIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	b := &stubBackend{
		name: "met",
		byQuery: map[string][]types.Item{
			"old": {{ID: "met-1", Title: "Old result"}},
			"new": {{ID: "met-2", Title: "New result"}},
		},
		gates:   map[string]chan struct{}{"old": gate},
		started: make(chan string, 2),
	}
	s := newSession(b)

	type outcome struct {
		snap    Snapshot
		applied bool
	}
	oldDone := make(chan outcome, 1)
	go func() {
		snap, applied := s.Search(context.Background(), "old")
		oldDone <- outcome{snap, applied}
	}()
	require.Equal(t, "old", <-b.started)
	assert.True(t, s.Snapshot().Loading)

	snap, applied := s.Search(context.Background(), "new")
	require.Equal(t, "new", <-b.started)
	require.True(t, applied)
	assert.Equal(t, []string{"New result"}, titles(snap.Page.Visible))

	close(gate)
	select {
	case out := <-oldDone:
		assert.False(t, out.applied)
	case <-time.After(5 * time.Second):
		t.Fatal("stale search never returned")
	}

	final := s.Snapshot()
	assert.Equal(t, "new", final.Query)
	assert.Equal(t, []string{"New result"}, titles(final.Page.Visible))
	assert.Equal(t, uint64(2), final.Generation)
}

func TestPagingTwentyFiveResults(t *testing.T) {
	var items []types.Item
	for i := 0; i < 25; i++ {
		items = append(items, types.Item{ID: fmt.Sprintf("met-%d", i), Title: fmt.Sprintf("Sun %02d", i)})
	}
	b := &stubBackend{name: "met", byQuery: map[string][]types.Item{"sun": items}}
	s := newSession(b)
	s.Search(context.Background(), "sun")

	p := s.Page()
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Visible, 10)

	assert.Equal(t, 1, s.PrevPage().Number, "previous clamps at 1")
	assert.Equal(t, 2, s.NextPage().Number)
	last := s.NextPage()
	assert.Equal(t, 3, last.Number)
	assert.Len(t, last.Visible, 5)
	assert.Equal(t, 3, s.NextPage().Number, "next from the last page is refused")

	assert.Equal(t, 3, s.GoTo(9).Number)
	assert.Equal(t, 1, s.GoTo(-2).Number)

	s.GoTo(3)
	s.Search(context.Background(), "sun")
	assert.Equal(t, 1, s.Page().Number, "a completed search resets the page")

	it, ok := s.Item(24)
	require.True(t, ok)
	assert.Equal(t, "Sun 24", it.Title)
	_, ok = s.Item(25)
	assert.False(t, ok)
}

func TestBlankQueryFetchesNothing(t *testing.T) {
	met, cle := sunBackends()
	s := newSession(met, cle)

	snap, applied := s.Search(context.Background(), "  ")
	assert.True(t, applied)
	assert.Empty(t, snap.Page.Visible)
	assert.Empty(t, snap.Error)
	assert.Zero(t, met.callCount())
}
