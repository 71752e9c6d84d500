package booster

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/22kyasue/adlottery/internal/apperr"
)

// Evidence thresholds. Both are enforced independently against the same
// floor: enough distinct urls overall, and enough entries dated recently.
const (
	MinEntries = 500
	MaxAgeDays = 30
)

// Counts is all that survives of an uploaded history file. The raw evidence
// is discarded as soon as these two numbers are derived.
type Counts struct {
	Unique int
	Recent int
}

var errUnparsable = apperr.New(apperr.InvalidInput, "unparsable_evidence",
	"Unable to parse file. Please upload a valid JSON or CSV history export.")

// ParseEvidence derives (unique, recent) counts from raw history text. The
// filename hint picks the parser strategy; without a recognized extension we
// try the record-array shape first and fall back to the tabular one.
func ParseEvidence(raw []byte, filename string, now time.Time) (Counts, error) {
	cutoff := now.Add(-MaxAgeDays * 24 * time.Hour)

	switch {
	case strings.HasSuffix(filename, ".json"):
		return parseRecords(raw, cutoff)
	case strings.HasSuffix(filename, ".csv"):
		return parseTable(raw, cutoff)
	default:
		if c, err := parseRecords(raw, cutoff); err == nil {
			return c, nil
		}
		return parseTable(raw, cutoff)
	}
}

// parseRecords handles the array-of-records export shape: a bare array, a
// {"Browser History": [...]} wrapper, or any object whose first array value
// holds the records. Unrecognized fields are ignored by contract.
func parseRecords(raw []byte, cutoff time.Time) (Counts, error) {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return Counts{}, errUnparsable
	}

	var entries []interface{}
	switch v := data.(type) {
	case []interface{}:
		entries = v
	case map[string]interface{}:
		if bh, ok := v["Browser History"].([]interface{}); ok {
			entries = bh
		} else {
			for _, val := range v {
				if arr, ok := val.([]interface{}); ok {
					entries = arr
					break
				}
			}
		}
	}
	if len(entries) == 0 {
		return Counts{}, errUnparsable
	}

	urls := make(map[string]struct{})
	recent := 0
	for _, e := range entries {
		rec, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		url := firstString(rec, "url", "URL", "uri")
		if url == "" {
			continue
		}
		urls[url] = struct{}{}

		raw := firstField(rec, "visitTime", "lastVisitTime", "time", "visit_time", "timestamp", "date")
		if ts, ok := parseTimestamp(raw); ok && !ts.Before(cutoff) {
			recent++
		}
	}
	return Counts{Unique: len(urls), Recent: recent}, nil
}

// parseTable handles delimited exports: a header row naming a url column
// (required) and a date column (optional). With no date column every row
// counts as recent.
func parseTable(raw []byte, cutoff time.Time) (Counts, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return Counts{}, errUnparsable
	}

	urlCol := findColumn(rows[0], "url", "uri", "address", "link")
	dateCol := findColumn(rows[0], "date", "time", "timestamp", "visit_time", "visittime", "last_visit")
	if urlCol == -1 {
		return Counts{}, errUnparsable
	}

	urls := make(map[string]struct{})
	recent := 0
	for _, row := range rows[1:] {
		if urlCol >= len(row) {
			continue
		}
		url := strings.TrimSpace(row[urlCol])
		if url == "" {
			continue
		}
		urls[url] = struct{}{}

		if dateCol != -1 && dateCol < len(row) {
			if ts, ok := parseTimestamp(strings.TrimSpace(row[dateCol])); ok && !ts.Before(cutoff) {
				recent++
			}
		}
	}
	if dateCol == -1 {
		recent = len(urls)
	}
	return Counts{Unique: len(urls), Recent: recent}, nil
}

func findColumn(header []string, candidates ...string) int {
	for _, cand := range candidates {
		for i, col := range header {
			name := strings.ToLower(strings.Trim(strings.TrimSpace(col), `"`))
			if strings.Contains(name, cand) {
				return i
			}
		}
	}
	return -1
}

func firstString(rec map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstField(rec map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// parseTimestamp accepts epoch seconds, epoch milliseconds, 17-digit
// microsecond values (Chrome Takeout), or a parseable date string.
func parseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case float64:
		return fromEpoch(t)
	case string:
		if t == "" {
			return time.Time{}, false
		}
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return fromEpoch(n)
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

func fromEpoch(n float64) (time.Time, bool) {
	switch {
	case n > 1e14: // microseconds
		return time.UnixMicro(int64(n)), true
	case n > 1e11: // milliseconds
		return time.UnixMilli(int64(n)), true
	case n > 1e9: // seconds
		return time.Unix(int64(n), 0), true
	}
	return time.Time{}, false
}
