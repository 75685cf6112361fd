package leave

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format")

// InclusiveDays counts calendar days from start to end, both included.
// A range that ends before it starts yields zero or less.
func InclusiveDays(start, end time.Time) int {
	s := DateOnly(start)
	e := DateOnly(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// DateOnly drops the clock and location, keeping the calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
