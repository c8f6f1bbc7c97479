package capturedate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"snapsort/internal/outcome"
)

// Layout is the EXIF timestamp layout reported by metadata tools.
const Layout = "2006:01:02 15:04:05"

// Floor is the digital-era cutoff. Timestamps at or before it are treated as
// unset or wrong camera clocks.
var Floor = time.Date(2004, time.January, 1, 0, 0, 0, 0, time.UTC)

// PriorityFields lists metadata labels in resolution order. The first field
// holding an acceptable timestamp wins.
var PriorityFields = []string{
	"Date/Time Original",
	"File Modification Date/Time",
	"GPS Date Stamp",
	"GPS Date/Time",
	"Create Date",
}

// Pattern matches a timestamp such as "2019:01:01 11:56:01" anywhere in a value.
var Pattern = regexp.MustCompile(`\d{4}:\d{2}:\d{2} \d{2}:\d{2}:\d{2}`)

// Date holds wall-clock calendar components. No timezone is implied beyond
// what the source metadata encodes.
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// FromTime copies the calendar components of t.
func FromTime(t time.Time) Date {
	return Date{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Time returns the date as a UTC instant carrying the same wall-clock values.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(Layout)
}

// Candidate is one labelled timestamp reported for a file.
type Candidate struct {
	Field  string
	Raw    string
	Parsed *time.Time
}

// Parse extracts and parses the first timestamp in raw.
func Parse(raw string) (time.Time, error) {
	match := Pattern.FindString(raw)
	if match == "" {
		return time.Time{}, fmt.Errorf("no timestamp in %q", strings.TrimSpace(raw))
	}
	return time.ParseInLocation(Layout, match, time.UTC)
}

// Candidates returns the priority fields present in fields, in priority
// order, with Parsed set when the value holds a valid timestamp.
func Candidates(fields map[string]string) []Candidate {
	out := make([]Candidate, 0, len(PriorityFields))
	for _, field := range PriorityFields {
		raw, ok := fields[field]
		if !ok {
			continue
		}
		cand := Candidate{Field: field, Raw: raw}
		if parsed, err := Parse(raw); err == nil {
			cand.Parsed = &parsed
		}
		out = append(out, cand)
	}
	return out
}

// Acceptable reports whether t is strictly after the digital-era floor.
func Acceptable(t time.Time) bool {
	return t.After(Floor)
}

// Resolve picks the authoritative capture date from field -> timestamp
// metadata. It returns the winning field label alongside the date.
func Resolve(fields map[string]string) (Date, string, error) {
	for _, cand := range Candidates(fields) {
		if cand.Parsed == nil || !Acceptable(*cand.Parsed) {
			continue
		}
		return FromTime(*cand.Parsed), cand.Field, nil
	}
	return Date{}, "", outcome.Wrap(
		outcome.ErrNoValidTimestamp,
		"resolve",
		"select date",
		fmt.Sprintf("no priority field holds a timestamp after %s", Floor.Format(Layout)),
		nil,
	)
}
