// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizeYear reduces free-text date to a comparable year by dropping
// every non-digit and parsing what is left. It returns nil when no digits
// remain or the digit run does not fit in an int.
//
// This is a heuristic, not a calendar parser: "ca. 1500" yields 1500 but
// "1500-1550" yields 15001550, and "19th century" yields 19.
func NormalizeYear(raw string) *int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}

// flexDate decodes a JSON date field that sources send either as a
// number or as a string. Null, empty text and the number 0 all decode to
// the empty value, which means absent.
type flexDate string

func (d *flexDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*d = ""
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = flexDate(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		return nil
	}
	*d = flexDate(n.String())
	return nil
}
