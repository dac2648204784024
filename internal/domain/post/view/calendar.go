package view

import (
	"time"

	"github.com/vadim/contentdesk/internal/domain/post/entity"
)

// Pure recomputations over already-fetched post collections. Nothing in
// this package performs I/O.

// DateRange is an inclusive date range; both bounds are part of the range.
// The DAO range query uses the same >= from AND <= to semantics so remote
// and local filtering agree on the boundary days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Valid reports whether the range is non-empty
func (r DateRange) Valid() bool {
	return !r.To.Before(r.From)
}

// Contains reports whether t falls inside the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// MonthRange returns the inclusive range covering one calendar month in UTC
func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		From: from,
		To:   from.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// DayKey returns the UTC calendar date of t as a bucket key. Bucketing is
// by calendar date equality in UTC, never by the display time zone, so a
// post at 23:59Z stays on its own day regardless of viewer offset.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayBuckets produces, for each calendar day of the month, the posts whose
// post date falls on that day. Every day of the month is present, empty
// days included, so the calendar grid renders directly from the result.
func DayBuckets(year int, month time.Month, posts []entity.Post) map[string][]entity.Post {
	buckets := make(map[string][]entity.Post)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		buckets[DayKey(d)] = []entity.Post{}
	}

	for _, p := range posts {
		key := DayKey(p.PostAt)
		if _, ok := buckets[key]; ok {
			buckets[key] = append(buckets[key], p)
		}
	}

	return buckets
}
