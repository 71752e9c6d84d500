// Package week owns the calendar boundaries the economy runs on: ISO week
// ids for ticket records and the prize pool, and the fixed UTC+9 midnight
// that resets daily ad-view counts.
package week

import (
	"fmt"
	"time"
)

// Reference is the fixed timezone the daily view window is anchored to.
var Reference = time.FixedZone("JST", 9*60*60)

// ID returns the ISO week id for t, e.g. "2026-W08". Server and clients must
// agree on this format.
func ID(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, wk)
}

// DayStart returns midnight of t's calendar day in the reference timezone.
func DayStart(t time.Time) time.Time {
	local := t.In(Reference)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Reference)
}
