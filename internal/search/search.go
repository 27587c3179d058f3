// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries art-collection APIs and returns one merged,
// sorted list of normalized items.
package search

import (
	"context"
	"errors"
	"math"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pdiddy/exhibition-curator/pkg/types"
)

// Backend searches a single collection API. Implementations filter for
// relevance themselves, drop items without an image, prefix IDs with a
// source-unique namespace, and keep no state between calls.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.Item, error)
}

// Policy decides what a backend failure does to the whole search.
type Policy int

const (
	// FailFast discards every result when any backend fails and cancels
	// the backends still running.
	FailFast Policy = iota

	// Partial keeps the results of healthy backends and reports the failed
	// ones in Result.FailedSources. The search fails only when every
	// backend fails.
	Partial
)

// Options tunes Aggregate.
type Options struct {
	Policy Policy
	Logger logrus.FieldLogger
}

// defaultLog is used when Options carries no logger.
var defaultLog = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}()

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return defaultLog
}

// Result holds the outcome of one aggregated search.
type Result struct {
	// Items is the merged list in sort order.
	Items []types.Item

	// Merged is the same items in backend order, before sorting. A later
	// sort change re-sorts from here so ties keep their original order.
	Merged []types.Item

	// Err is an *AggregateFailure when the search produced no usable
	// results because of backend failures.
	Err error

	// FailedSources names the backends that failed.
	FailedSources []string
}

// Aggregate runs query against every backend concurrently, waits for all
// of them, concatenates their items in backend order, and sorts the
// result by mode. A blank query returns an empty Result without
// contacting any backend.
func Aggregate(ctx context.Context, query string, mode types.SortMode, backends []Backend, opts Options) Result {
	query = strings.TrimSpace(query)
	if query == "" || len(backends) == 0 {
		return Result{}
	}
	log := opts.logger()

	perBackend := make([][]types.Item, len(backends))
	errs := make([]error, len(backends))

	if opts.Policy == Partial {
		var g errgroup.Group
		for i, b := range backends {
			i, b := i, b
			g.Go(func() error {
				perBackend[i], errs[i] = b.Search(ctx, query)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i, b := range backends {
			i, b := i, b
			g.Go(func() error {
				perBackend[i], errs[i] = b.Search(gctx, query)
				return errs[i]
			})
		}
		_ = g.Wait()
	}

	var failure AggregateFailure
	var merged []types.Item
	for i, b := range backends {
		err := errs[i]
		if err == nil {
			merged = append(merged, perBackend[i]...)
			continue
		}
		// Cancelled because a sibling failed first; not a failure of its own.
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			continue
		}
		log.WithFields(logrus.Fields{
			"source": b.Name(),
			"query":  query,
			"error":  err,
		}).Warn("backend search failed")
		failure.Sources = append(failure.Sources, b.Name())
		failure.Causes = append(failure.Causes, err)
	}

	if len(failure.Sources) > 0 && (opts.Policy != Partial || len(failure.Sources) == len(backends)) {
		return Result{Err: &failure, FailedSources: failure.Sources}
	}

	log.WithFields(logrus.Fields{
		"query":   query,
		"results": len(merged),
		"sort":    string(mode),
	}).Debug("search complete")

	return Result{
		Items:         SortItems(merged, mode),
		Merged:        merged,
		FailedSources: failure.Sources,
	}
}

// SortItems returns a stably sorted copy of items.
//
// SortTitle orders by title with an English collator. SortNewest orders by
// year descending, counting an unknown year as 0. SortOldest orders by
// year ascending, counting an unknown year as +Inf. Either way unknown
// years end up last.
func SortItems(items []types.Item, mode types.SortMode) []types.Item {
	out := slices.Clone(items)
	switch mode {
	case types.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return newestKey(out[i]) > newestKey(out[j])
		})
	case types.SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return oldestKey(out[i]) < oldestKey(out[j])
		})
	default:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

func newestKey(it types.Item) float64 {
	if y, ok := it.Year(); ok {
		return float64(y)
	}
	return 0
}

// oldestKey puts unknown dates last. A parsed year of 0 is a known year
// and sorts first; only a nil date counts as unknown.
func oldestKey(it types.Item) float64 {
	if y, ok := it.Year(); ok {
		return float64(y)
	}
	return math.Inf(1)
}

// NewBackends builds the backends enabled in cfg, sharing one HTTP client.
func NewBackends(cfg types.SearchConfig) []Backend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	var backends []Backend
	if cfg.Met.Enabled {
		backends = append(backends, &MetBackend{
			Client:     client,
			BaseURL:    cfg.Met.BaseURL,
			UserAgent:  cfg.UserAgent,
			MaxObjects: cfg.Met.MaxObjects,
		})
	}
	if cfg.Cleveland.Enabled {
		backends = append(backends, &ClevelandBackend{
			Client:    client,
			BaseURL:   cfg.Cleveland.BaseURL,
			UserAgent: cfg.UserAgent,
		})
	}
	return backends
}

// PolicyFor maps the partial_results setting to a Policy.
func PolicyFor(cfg types.SearchConfig) Policy {
	if cfg.PartialResults {
		return Partial
	}
	return FailFast
}
