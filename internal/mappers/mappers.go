// Package mappers converts between wire records and storage records. All
// functions are pure: they perform no I/O and never mutate their inputs.
// Local-only fields (pinned, last-accessed) are supplied by the caller and
// never fabricated from a wire record.
package mappers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrMissingID marks a wire record without an identifier. Such records are
// not-yet-created placeholders and must not leak into the cache.
var ErrMissingID = errors.New("wire record has no id")

var validate = validator.New()

// fromMillis converts an optional wire timestamp (milliseconds since epoch)
// to storage time. A nil timestamp maps to the zero time, which sorts below
// every real timestamp in last-writer-wins comparisons.
func fromMillis(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms).UTC()
}

// toMillis is the inverse of fromMillis; the zero time maps back to nil.
func toMillis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
