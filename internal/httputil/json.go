// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the source backends.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes bounds how much of an upstream response is decoded.
const maxBodyBytes = 16 << 20

// NetworkError reports a failure to reach a source or an unusable non-200
// reply.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamFormatError reports a response body that could not be decoded
// into the expected shape.
type UpstreamFormatError struct {
	URL string
	Err error
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Err)
}

func (e *UpstreamFormatError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsUpstreamFormat reports whether err is, or wraps, an UpstreamFormatError.
func IsUpstreamFormat(err error) bool {
	var fe *UpstreamFormatError
	return errors.As(err, &fe)
}

// GetJSON issues a GET request for url and decodes the JSON body into v.
// Transport failures and non-200 statuses return a *NetworkError; a body
// that is not valid JSON for v returns an *UpstreamFormatError.
func GetJSON(ctx context.Context, client *http.Client, url, userAgent string, v any) error {
	return getJSON(ctx, client, url, userAgent, v, false)
}

// GetJSONAnyStatus is GetJSON for endpoints that answer misses with a JSON
// error document. The body is decoded whatever the status. A non-200 reply
// is an error only when its body is not JSON, and then it is a
// *NetworkError carrying the status.
func GetJSONAnyStatus(ctx context.Context, client *http.Client, url, userAgent string, v any) error {
	return getJSON(ctx, client, url, userAgent, v, true)
}

func getJSON(ctx context.Context, client *http.Client, url, userAgent string, v any, anyStatus bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && !anyStatus {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		if ctx.Err() != nil {
			return &NetworkError{URL: url, Err: ctx.Err()}
		}
		if resp.StatusCode != http.StatusOK {
			return &NetworkError{URL: url, StatusCode: resp.StatusCode, Err: err}
		}
		return &UpstreamFormatError{URL: url, Err: err}
	}
	return nil
}
