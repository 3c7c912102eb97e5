package model

import "time"

// Date is a calendar day, with no time-of-day component. It backs
// Trip.StartDate/EndDate and the date half of a query's start
// datetime.
type Date struct {
	t time.Time
}

// NewDate builds a Date from a year/month/day triple, normalised to
// UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date, discarding
// time-of-day and location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// Weekday returns the day index, 0=Monday .. 6=Sunday, matching the
// DaysRun array of a Trip.
func (d Date) Weekday() int {
	// time.Weekday is 0=Sunday..6=Saturday; shift so Monday is 0.
	return (int(d.t.Weekday()) + 6) % 7
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}

// GobEncode/GobDecode delegate to time.Time so Date can be stored by
// the storage package's blob-based backends without losing its
// unexported field.
func (d Date) GobEncode() ([]byte, error) {
	return d.t.GobEncode()
}

func (d *Date) GobDecode(data []byte) error {
	return d.t.GobDecode(data)
}
