// Package civil provides calendar-date arithmetic pinned to a single
// business timezone. All reminder math works on whole civil days; time of
// day never participates in a comparison.
package civil

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the wire format for civil dates.
const Layout = "2006-01-02"

// Date is a calendar date with no time-of-day component. The zero value is
// the zero date and reports IsZero() == true.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid civil date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// FromTime truncates an instant to the civil date it falls on in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(Layout) }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Weekday returns the day of week (Sunday = 0).
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n whole days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysBetween returns d - other in whole civil days (signed). Both dates
// live at midnight UTC so the division is exact even across DST changes in
// the business timezone.
func (d Date) DaysBetween(other Date) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// Time exposes the underlying midnight-UTC instant, mainly for the database
// layer.
func (d Date) Time() time.Time { return d.t }

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string or an empty string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == `""` || s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid civil date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date binds to a DATE column.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into civil.Date", src)
	}
}

// Clock yields "today" as a civil date. Services take a Clock so tests can
// freeze the calendar.
type Clock interface {
	Today() Date
}

// ZoneClock reads the wall clock and truncates it in a fixed timezone.
type ZoneClock struct {
	loc *time.Location
}

// NewZoneClock loads the named timezone. The business calendar is fixed at
// deploy time; a bad name is a configuration error.
func NewZoneClock(name string) (*ZoneClock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load business timezone %q: %w", name, err)
	}
	return &ZoneClock{loc: loc}, nil
}

func (c *ZoneClock) Today() Date {
	return FromTime(time.Now(), c.loc)
}

// FixedClock always reports the same date. Used in tests.
type FixedClock struct {
	Date Date
}

func (c FixedClock) Today() Date { return c.Date }
