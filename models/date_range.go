package models

import "time"

// DateRange is a requested stay. Either bound may be missing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NewDateRange builds a closed range.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: &start, End: &end}
}

func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Overlaps reports whether an existing booking [begin, end] collides with r.
// Both ranges are inclusive. A missing bound on r is open.
func (r DateRange) Overlaps(begin, end time.Time) bool {
	switch {
	case r.Start != nil && r.End != nil:
		return !begin.After(*r.End) && !end.Before(*r.Start)
	case r.Start != nil:
		return !end.Before(*r.Start)
	case r.End != nil:
		return !begin.After(*r.End)
	default:
		return false
	}
}

// StayDays counts the nights of an inclusive stay, so a same-day stay is one day.
func StayDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}
