package cronparser

import (
	"time"

	"github.com/reugn/go-cronparser/logger"
)

// dateOption holds a date given either as a time or as a timestamp string,
// which is parsed once the expression location is known.
type dateOption struct {
	set       bool
	t         time.Time
	timestamp string
}

func (o dateOption) resolve(loc *time.Location) (*CronDate, error) {
	if o.timestamp != "" {
		return parseCronDateInLocation(o.timestamp, loc)
	}
	return NewCronDateFromTime(o.t, loc), nil
}

// Options holds the settings of an Expression.
type Options struct {
	currentDate  dateOption
	startDate    dateOption
	endDate      dateOption
	utc          bool
	timezone     string
	location     *time.Location
	nthDayOfWeek int
	logger       logger.Logger
}

// Option configures an Expression.
type Option func(*Options)

// WithCurrentDate sets the date the schedule search starts from.
// It defaults to the current time.
func WithCurrentDate(t time.Time) Option {
	return func(o *Options) {
		o.currentDate = dateOption{set: true, t: t}
	}
}

// WithCurrentDateString sets the date the schedule search starts from as a
// timestamp, see ParseCronDate for the accepted formats.
func WithCurrentDateString(timestamp string) Option {
	return func(o *Options) {
		o.currentDate = dateOption{set: true, timestamp: timestamp}
	}
}

// WithStartDate sets the lower bound of a backward search.
func WithStartDate(t time.Time) Option {
	return func(o *Options) {
		o.startDate = dateOption{set: true, t: t}
	}
}

// WithStartDateString sets the lower bound of a backward search as a timestamp.
func WithStartDateString(timestamp string) Option {
	return func(o *Options) {
		o.startDate = dateOption{set: true, timestamp: timestamp}
	}
}

// WithEndDate sets the upper bound of a forward search.
func WithEndDate(t time.Time) Option {
	return func(o *Options) {
		o.endDate = dateOption{set: true, t: t}
	}
}

// WithEndDateString sets the upper bound of a forward search as a timestamp.
func WithEndDateString(timestamp string) Option {
	return func(o *Options) {
		o.endDate = dateOption{set: true, timestamp: timestamp}
	}
}

// WithTimezone sets the IANA time zone the schedule is evaluated in.
func WithTimezone(name string) Option {
	return func(o *Options) {
		o.timezone = name
	}
}

// WithLocation sets the location the schedule is evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(o *Options) {
		o.location = loc
	}
}

// WithUTC evaluates the schedule in UTC, overriding any time zone option.
func WithUTC() Option {
	return func(o *Options) {
		o.utc = true
	}
}

// WithNthDayOfWeek restricts matching days to the nth (1-5) occurrence of
// their weekday within the month.
func WithNthDayOfWeek(n int) Option {
	return func(o *Options) {
		o.nthDayOfWeek = n
	}
}

// WithLogger sets the logger used by the Expression.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// resolveLocation returns the location selected by the options.
func (o *Options) resolveLocation() (*time.Location, error) {
	switch {
	case o.utc:
		return time.UTC, nil
	case o.location != nil:
		return o.location, nil
	default:
		return loadLocation(o.timezone)
	}
}
