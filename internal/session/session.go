// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the state a presentation layer needs between
// calls: the current query, sort mode, page, and the last merged result
// set. Each search is tagged with a generation number and only the
// latest search may overwrite the results.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/exhibition-curator/internal/pager"
	"github.com/pdiddy/exhibition-curator/internal/search"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// Options configures a Session.
type Options struct {
	Policy   search.Policy
	PageSize int
	Logger   logrus.FieldLogger
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Query         string
	Sort          types.SortMode
	Page          pager.Page
	Loading       bool
	Error         string
	FailedSources []string
	Generation    uint64
}

// Session is safe for concurrent use.
type Session struct {
	backends []search.Backend
	opts     Options

	mu      sync.Mutex
	query   string
	mode    types.SortMode
	page    int
	merged  []types.Item
	results []types.Item
	loading bool
	errMsg  string
	failed  []string
	gen     uint64
}

// New returns an idle session sorting by title.
func New(backends []search.Backend, opts Options) *Session {
	if opts.PageSize < 1 {
		opts.PageSize = pager.DefaultPageSize
	}
	return &Session{
		backends: backends,
		opts:     opts,
		mode:     types.SortTitle,
		page:     1,
	}
}

// Search runs query against every backend with the current sort mode.
// The outcome is applied only if no newer search started in the
// meantime; applied reports whether it was. After an applied search the
// page is 1.
func (s *Session) Search(ctx context.Context, query string) (snap Snapshot, applied bool) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.query = query
	mode := s.mode
	s.loading = true
	s.errMsg = ""
	s.failed = nil
	s.merged = nil
	s.results = nil
	s.mu.Unlock()

	res := search.Aggregate(ctx, query, mode, s.backends, search.Options{
		Policy: s.opts.Policy,
		Logger: s.opts.Logger,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		if s.opts.Logger != nil {
			s.opts.Logger.WithFields(logrus.Fields{
				"query":      query,
				"generation": gen,
				"latest":     s.gen,
			}).Debug("discarding stale search result")
		}
		return s.snapshotLocked(), false
	}

	s.loading = false
	s.page = 1
	s.failed = res.FailedSources
	if res.Err != nil {
		s.errMsg = res.Err.Error()
		return s.snapshotLocked(), true
	}

	s.merged = res.Merged
	s.results = res.Items
	// The sort mode may have changed while the search was in flight.
	if s.mode != mode {
		s.results = search.SortItems(s.merged, s.mode)
	}
	return s.snapshotLocked(), true
}

// SetSort changes the sort mode and re-sorts the last merged results from
// their original backend order, which gives the same order a fresh search
// would. The page returns to 1 when there are results.
func (s *Session) SetSort(mode types.SortMode) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return s.snapshotLocked()
	}
	s.mode = mode
	if strings.TrimSpace(s.query) != "" && len(s.merged) > 0 {
		s.results = search.SortItems(s.merged, mode)
		s.page = 1
	}
	return s.snapshotLocked()
}

// NextPage advances one page unless the current page already shows the
// last item.
func (s *Session) NextPage() pager.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pager.Next(s.page, s.opts.PageSize, len(s.results))
	return s.pageLocked()
}

// PrevPage moves back one page, stopping at page 1.
func (s *Session) PrevPage() pager.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pager.Prev(s.page)
	return s.pageLocked()
}

// GoTo jumps to page n, clamped to the available pages.
func (s *Session) GoTo(n int) pager.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = pager.Clamp(n, pager.TotalPages(len(s.results), s.opts.PageSize))
	return s.pageLocked()
}

// Page returns the current page.
func (s *Session) Page() pager.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLocked()
}

// Item returns the result at index i (0-based, across all pages).
func (s *Session) Item(i int) (types.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		return types.Item{}, false
	}
	return s.results[i], true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) pageLocked() pager.Page {
	p := pager.Paginate(s.results, s.page, s.opts.PageSize)
	p.Visible = slices.Clone(p.Visible)
	return p
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Query:         s.query,
		Sort:          s.mode,
		Page:          s.pageLocked(),
		Loading:       s.loading,
		Error:         s.errMsg,
		FailedSources: slices.Clone(s.failed),
		Generation:    s.gen,
	}
}
