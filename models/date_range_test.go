package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func TestDateRange_Overlaps(t *testing.T) {
	// existing booking 2024-06-10 .. 2024-06-15
	begin, end := day("2024-06-10"), day("2024-06-15")

	tests := []struct {
		name string
		r    DateRange
		want bool
	}{
		{"inside", NewDateRange(day("2024-06-11"), day("2024-06-12")), true},
		{"covers", NewDateRange(day("2024-06-01"), day("2024-06-30")), true},
		{"touches start", NewDateRange(day("2024-06-05"), day("2024-06-10")), true},
		{"touches end", NewDateRange(day("2024-06-15"), day("2024-06-20")), true},
		{"before", NewDateRange(day("2024-06-01"), day("2024-06-09")), false},
		{"after", NewDateRange(day("2024-06-16"), day("2024-06-20")), false},
		{"only start before end", DateRange{Start: ptr(day("2024-06-15"))}, true},
		{"only start after end", DateRange{Start: ptr(day("2024-06-16"))}, false},
		{"only end after begin", DateRange{End: ptr(day("2024-06-10"))}, true},
		{"only end before begin", DateRange{End: ptr(day("2024-06-09"))}, false},
		{"no bounds", DateRange{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Overlaps(begin, end))
		})
	}
}

func TestStayDays(t *testing.T) {
	assert.Equal(t, 1, StayDays(day("2024-06-10"), day("2024-06-10")))
	assert.Equal(t, 3, StayDays(day("2024-06-10"), day("2024-06-12")))
	assert.Equal(t, 32, StayDays(day("2024-01-31"), day("2024-03-02")))
}

func TestOrder_OccupiesIgnoresStatus(t *testing.T) {
	o := Order{BeginDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: OrderStatusRejected}
	assert.True(t, o.Occupies(NewDateRange(day("2024-06-12"), day("2024-06-14"))))
	assert.False(t, o.Occupies(NewDateRange(day("2024-06-13"), day("2024-06-14"))))
}
