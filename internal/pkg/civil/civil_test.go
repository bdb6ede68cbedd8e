package civil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-06")
	require.NoError(t, err)
	require.Equal(t, 2024, d.Year())
	require.Equal(t, time.March, d.Month())
	require.Equal(t, 6, d.Day())

	_, err = ParseDate("06/03/2024")
	require.Error(t, err)

	_, err = ParseDate("")
	require.Error(t, err)
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	require.Equal(t, "2024-02-29", d.AddDays(1).String()) // leap year
	require.Equal(t, "2024-03-01", d.AddDays(2).String())
	require.Equal(t, "2024-01-29", d.AddDays(-30).String())
}

func TestDaysBetweenIsSigned(t *testing.T) {
	a := NewDate(2024, time.March, 10)
	b := NewDate(2024, time.March, 6)
	require.Equal(t, 4, a.DaysBetween(b))
	require.Equal(t, -4, b.DaysBetween(a))
	require.Equal(t, 0, a.DaysBetween(a))
}

func TestDaysBetweenAcrossDSTChange(t *testing.T) {
	// US DST starts 2024-03-10; civil dates ignore it.
	a := NewDate(2024, time.March, 9)
	require.Equal(t, 2, NewDate(2024, time.March, 11).DaysBetween(a))
}

func TestMonthStartAndWeekday(t *testing.T) {
	d := NewDate(2024, time.March, 17)
	require.Equal(t, "2024-03-01", d.MonthStart().String())
	require.Equal(t, time.Sunday, d.Weekday())
	require.Equal(t, time.Friday, d.MonthStart().Weekday())
}

func TestFromTimeUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	// 03:00 UTC is still the previous evening in Mexico City.
	instant := time.Date(2024, time.March, 10, 3, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-03-09", FromTime(instant, loc).String())
	require.Equal(t, "2024-03-10", FromTime(instant, time.UTC).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 6)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-06"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, back.Equal(d))

	var zero Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	require.True(t, zero.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &back))
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.March, 6, 15, 30, 0, 0, time.FixedZone("x", -6*3600))))
	require.Equal(t, "2024-03-06", d.String())

	require.NoError(t, d.Scan("2024-04-01"))
	require.Equal(t, "2024-04-01", d.String())

	require.NoError(t, d.Scan(nil))
	require.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}

func TestFixedClock(t *testing.T) {
	d := NewDate(2024, time.March, 10)
	require.True(t, FixedClock{Date: d}.Today().Equal(d))
}
