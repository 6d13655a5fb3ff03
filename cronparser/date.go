package cronparser

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar unit a CronDate can be moved by.
type Unit int

// Calendar units, from the most to the least significant.
const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	Second
)

var unitNames = [...]string{"year", "month", "day", "hour", "minute", "second"}

// String returns the unit name.
func (u Unit) String() string {
	if u < Year || u > Second {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// dateLayouts lists the accepted timestamp formats in the order they are tried.
var dateLayouts = []string{
	// ISO-8601
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	// RFC-2822
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	// SQL
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	// fallback
	"Mon, 2 Jan 2006 15:04:05",
}

// CronDate is a point in time bound to a location, with calendar unit
// arithmetic that stays monotonic across daylight saving transitions.
type CronDate struct {
	t time.Time
}

// NewCronDate returns a CronDate holding the current instant in loc.
// A nil loc stands for time.Local.
func NewCronDate(loc *time.Location) *CronDate {
	return NewCronDateFromTime(time.Now(), loc)
}

// NewCronDateFromTime returns a CronDate holding t converted to loc.
// A nil loc stands for time.Local.
func NewCronDateFromTime(t time.Time, loc *time.Location) *CronDate {
	if loc == nil {
		loc = time.Local
	}
	return &CronDate{t: t.In(loc)}
}

// NewCronDateFromUnixMilli returns a CronDate holding the given Unix
// timestamp in milliseconds.
func NewCronDateFromUnixMilli(msec int64, loc *time.Location) *CronDate {
	return NewCronDateFromTime(time.UnixMilli(msec), loc)
}

// ParseCronDate parses a timestamp in one of the ISO-8601, RFC-2822, SQL or
// "Mon, 2 Jan 2006 15:04:05" formats. Timestamps without a zone offset are
// read as wall clock time of tz; an empty tz stands for the local zone.
func ParseCronDate(timestamp, tz string) (*CronDate, error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return nil, err
	}
	return parseCronDateInLocation(timestamp, loc)
}

func parseCronDateInLocation(timestamp string, loc *time.Location) (*CronDate, error) {
	if loc == nil {
		loc = time.Local
	}
	value := strings.TrimSpace(timestamp)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return NewCronDateFromTime(t, loc), nil
		}
	}
	return nil, invalidTimestampError(timestamp)
}

// loadLocation resolves an IANA time zone name.
func loadLocation(tz string) (*time.Location, error) {
	switch tz {
	case "":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, illegalArgumentError(fmt.Sprintf("unknown time zone %q", tz))
	}
	return loc, nil
}

// Clone returns a copy of the date.
func (d *CronDate) Clone() *CronDate {
	return &CronDate{t: d.t}
}

// Time returns the underlying time.
func (d *CronDate) Time() time.Time { return d.t }

// Location returns the date location.
func (d *CronDate) Location() *time.Location { return d.t.Location() }

// UnixMilli returns the date as a Unix time in milliseconds.
func (d *CronDate) UnixMilli() int64 { return d.t.UnixMilli() }

// Equal reports whether both dates represent the same instant.
func (d *CronDate) Equal(other *CronDate) bool { return d.t.Equal(other.t) }

// Before reports whether d is before other.
func (d *CronDate) Before(other *CronDate) bool { return d.t.Before(other.t) }

// After reports whether d is after other.
func (d *CronDate) After(other *CronDate) bool { return d.t.After(other.t) }

// String returns the date in RFC 3339 format.
func (d *CronDate) String() string { return d.t.Format(time.RFC3339) }

// Year returns the year in the date location.
func (d *CronDate) Year() int { return d.t.Year() }

// Month returns the month (1-12) in the date location.
func (d *CronDate) Month() int { return int(d.t.Month()) }

// Day returns the day of the month in the date location.
func (d *CronDate) Day() int { return d.t.Day() }

// Weekday returns the day of the week (0-6, Sunday is 0) in the date location.
func (d *CronDate) Weekday() int { return int(d.t.Weekday()) }

// Hour returns the hour in the date location.
func (d *CronDate) Hour() int { return d.t.Hour() }

// Minute returns the minute in the date location.
func (d *CronDate) Minute() int { return d.t.Minute() }

// Second returns the second of the minute.
func (d *CronDate) Second() int { return d.t.Second() }

// Nanosecond returns the nanosecond offset within the second.
func (d *CronDate) Nanosecond() int { return d.t.Nanosecond() }

// UTCYear returns the year in UTC.
func (d *CronDate) UTCYear() int { return d.t.UTC().Year() }

// UTCMonth returns the month (1-12) in UTC.
func (d *CronDate) UTCMonth() int { return int(d.t.UTC().Month()) }

// UTCDay returns the day of the month in UTC.
func (d *CronDate) UTCDay() int { return d.t.UTC().Day() }

// UTCWeekday returns the day of the week (0-6, Sunday is 0) in UTC.
func (d *CronDate) UTCWeekday() int { return int(d.t.UTC().Weekday()) }

// UTCHour returns the hour in UTC.
func (d *CronDate) UTCHour() int { return d.t.UTC().Hour() }

// UTCMinute returns the minute in UTC.
func (d *CronDate) UTCMinute() int { return d.t.UTC().Minute() }

// UTCSecond returns the second of the minute in UTC.
func (d *CronDate) UTCSecond() int { return d.t.UTC().Second() }

// TruncateSecond clears the sub-second part of the date.
func (d *CronDate) TruncateSecond() {
	d.t = d.t.Truncate(time.Second)
}

// IsLastDayOfMonth reports whether the date falls on the last day of its month.
func (d *CronDate) IsLastDayOfMonth() bool {
	return d.shiftDays(1).Month() != d.t.Month()
}

// IsLastWeekdayOfMonth reports whether the date weekday does not occur again
// later in the same month.
func (d *CronDate) IsLastWeekdayOfMonth() bool {
	return d.shiftDays(7).Month() != d.t.Month()
}

func (d *CronDate) shiftDays(days int) time.Time {
	year, month, day := d.t.Date()
	return time.Date(year, month, day+days, 0, 0, 0, 0, d.t.Location())
}

// AddUnit moves the date forward by one unit and rounds it down to the start
// of that unit.
func (d *CronDate) AddUnit(unit Unit) {
	switch unit {
	case Year:
		d.AddYear()
	case Month:
		d.AddMonth()
	case Day:
		d.AddDay()
	case Hour:
		d.AddHour()
	case Minute:
		d.AddMinute()
	case Second:
		d.AddSecond()
	}
}

// SubtractUnit moves the date back by one unit and rounds it up to the last
// whole second of that unit.
func (d *CronDate) SubtractUnit(unit Unit) {
	switch unit {
	case Year:
		d.SubtractYear()
	case Month:
		d.SubtractMonth()
	case Day:
		d.SubtractDay()
	case Hour:
		d.SubtractHour()
	case Minute:
		d.SubtractMinute()
	case Second:
		d.SubtractSecond()
	}
}

// AddYear moves the date to the start of the next year.
func (d *CronDate) AddYear() {
	d.forward(time.Date(d.t.Year()+1, time.January, 1, 0, 0, 0, 0, d.t.Location()))
}

// AddMonth moves the date to the start of the next month.
func (d *CronDate) AddMonth() {
	d.forward(time.Date(d.t.Year(), d.t.Month()+1, 1, 0, 0, 0, 0, d.t.Location()))
}

// AddDay moves the date to the start of the next day.
func (d *CronDate) AddDay() {
	d.forward(d.shiftDays(1))
}

// AddHour moves the date to the start of the next hour.
func (d *CronDate) AddHour() {
	d.forward(startOfHour(d.t.Add(time.Hour)))
}

// AddMinute moves the date to the start of the next minute.
func (d *CronDate) AddMinute() {
	d.forward(startOfMinute(d.t.Add(time.Minute)))
}

// AddSecond moves the date to the start of the next second.
func (d *CronDate) AddSecond() {
	d.forward(d.t.Add(time.Second).Truncate(time.Second))
}

// SubtractYear moves the date to the last second of the previous year.
func (d *CronDate) SubtractYear() {
	d.backward(time.Date(d.t.Year(), time.January, 1, 0, 0, 0, 0, d.t.Location()).Add(-time.Second))
}

// SubtractMonth moves the date to the last second of the previous month.
func (d *CronDate) SubtractMonth() {
	d.backward(time.Date(d.t.Year(), d.t.Month(), 1, 0, 0, 0, 0, d.t.Location()).Add(-time.Second))
}

// SubtractDay moves the date to the last second of the previous day.
func (d *CronDate) SubtractDay() {
	d.backward(d.shiftDays(0).Add(-time.Second))
}

// SubtractHour moves the date to the last second of the previous hour.
func (d *CronDate) SubtractHour() {
	d.backward(startOfHour(d.t).Add(-time.Second))
}

// SubtractMinute moves the date to the last second of the previous minute.
func (d *CronDate) SubtractMinute() {
	d.backward(startOfMinute(d.t).Add(-time.Second))
}

// SubtractSecond moves the date to the start of the previous second.
func (d *CronDate) SubtractSecond() {
	d.backward(d.t.Truncate(time.Second).Add(-time.Second))
}

// forward commits next, stepping one more hour when a zone transition
// turned the move into a no-op or a jump back.
func (d *CronDate) forward(next time.Time) {
	if !next.After(d.t) {
		next = next.Add(time.Hour)
	}
	d.t = next
}

// backward is the mirror of forward.
func (d *CronDate) backward(prev time.Time) {
	if !prev.Before(d.t) {
		prev = prev.Add(-time.Hour)
	}
	d.t = prev
}

// startOfHour rounds t down to the start of its local hour. The rounding
// works on the instant so that a repeated wall clock hour is not confused
// with its twin.
func startOfHour(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Minute())*time.Minute -
		time.Duration(t.Second())*time.Second -
		time.Duration(t.Nanosecond()))
}

func startOfMinute(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond()))
}
