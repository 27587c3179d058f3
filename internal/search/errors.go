// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"strings"
)

// GenericFailureMessage is the only failure text shown to users; the
// underlying causes are logged, not displayed.
const GenericFailureMessage = "Error fetching artworks."

// AggregateFailure is returned when backend failures prevent a search
// from producing results. Sources lists the failed backends and Causes
// their errors, in backend order.
type AggregateFailure struct {
	Sources []string
	Causes  []error
}

func (e *AggregateFailure) Error() string { return GenericFailureMessage }

// Unwrap exposes the backend errors to errors.Is and errors.As.
func (e *AggregateFailure) Unwrap() []error { return e.Causes }

// Detail returns the causes joined for logs.
func (e *AggregateFailure) Detail() string {
	parts := make([]string, len(e.Causes))
	for i, err := range e.Causes {
		parts[i] = e.Sources[i] + ": " + err.Error()
	}
	return strings.Join(parts, "; ")
}

// IsAggregateFailure reports whether err is, or wraps, an AggregateFailure.
func IsAggregateFailure(err error) bool {
	var af *AggregateFailure
	return errors.As(err, &af)
}
