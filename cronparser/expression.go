package cronparser

import (
	"strconv"
	"strings"
	"time"

	"github.com/reugn/go-cronparser/logger"
)

// iterateCapacity bounds the preallocated result of Iterate, which may stop
// long before the requested number of steps.
const iterateCapacity = 64

// Expression is a schedule bound to a location and a current date, which
// moves with every successful Next and Prev call.
//
// An Expression is not safe for concurrent use.
type Expression struct {
	fields       *Fields
	location     *time.Location
	initialDate  *CronDate
	currentDate  *CronDate
	startDate    *CronDate
	endDate      *CronDate
	nthDayOfWeek int
	hasIterated  bool
	logger       logger.Logger
}

// NewExpression returns an Expression evaluating the given fields.
func NewExpression(fields *Fields, opts ...Option) (*Expression, error) {
	if fields == nil {
		return nil, illegalArgumentError("fields are nil")
	}
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.nthDayOfWeek < 0 || options.nthDayOfWeek > 5 {
		return nil, illegalArgumentError("nth day of week must be within 1-5")
	}
	loc, err := options.resolveLocation()
	if err != nil {
		return nil, err
	}

	expression := &Expression{
		fields:       fields,
		location:     loc,
		nthDayOfWeek: options.nthDayOfWeek,
		logger:       options.logger,
	}
	if expression.logger == nil {
		expression.logger = logger.Default()
	}

	if options.currentDate.set {
		if expression.currentDate, err = options.currentDate.resolve(loc); err != nil {
			return nil, err
		}
	} else {
		expression.currentDate = NewCronDate(loc)
	}
	if options.startDate.set {
		if expression.startDate, err = options.startDate.resolve(loc); err != nil {
			return nil, err
		}
		if expression.currentDate.Before(expression.startDate) {
			expression.currentDate = expression.startDate.Clone()
		}
	}
	if options.endDate.set {
		if expression.endDate, err = options.endDate.resolve(loc); err != nil {
			return nil, err
		}
	}
	expression.initialDate = expression.currentDate.Clone()

	return expression, nil
}

// Next moves the expression to the next matching date and returns it.
func (e *Expression) Next() (time.Time, error) {
	return e.advance(false)
}

// Prev moves the expression to the previous matching date and returns it.
func (e *Expression) Prev() (time.Time, error) {
	return e.advance(true)
}

func (e *Expression) advance(reverse bool) (time.Time, error) {
	date, err := e.findSchedule(e.currentDate, reverse)
	if err != nil {
		return time.Time{}, err
	}
	e.currentDate = date
	e.hasIterated = true
	return date.Time(), nil
}

// HasNext reports whether Next would succeed, without moving the expression.
func (e *Expression) HasNext() bool {
	_, err := e.findSchedule(e.currentDate, false)
	return err == nil
}

// HasPrev reports whether Prev would succeed, without moving the expression.
func (e *Expression) HasPrev() bool {
	_, err := e.findSchedule(e.currentDate, true)
	return err == nil
}

// Iterate calls Next steps times, or Prev -steps times when steps is
// negative, and returns the dates found. It stops at the first failure.
func (e *Expression) Iterate(steps int) []time.Time {
	reverse := steps < 0
	count := uint(steps)
	if reverse {
		// unsigned negation also holds for math.MinInt
		count = -count
	}
	dates := make([]time.Time, 0, min(count, iterateCapacity))
	for range count {
		date, err := e.advance(reverse)
		if err != nil {
			break
		}
		dates = append(dates, date)
	}
	return dates
}

// Includes reports whether every field holds the matching component of t,
// read in the expression location. Unlike the schedule search it does not
// apply the day-of-month or day-of-week rule.
func (e *Expression) Includes(t time.Time) bool {
	date := NewCronDateFromTime(t, e.location)
	weekday := date.Weekday()
	return e.fields.Second().Contains(date.Second()) &&
		e.fields.Minute().Contains(date.Minute()) &&
		e.fields.Hour().Contains(date.Hour()) &&
		e.fields.DayOfMonth().Contains(date.Day()) &&
		e.fields.Month().Contains(date.Month()) &&
		(e.fields.DayOfWeek().Contains(weekday) ||
			weekday == 0 && e.fields.DayOfWeek().Contains(7))
}

// Reset moves the expression back to the date it was created with.
func (e *Expression) Reset() {
	e.currentDate = e.initialDate.Clone()
	e.hasIterated = false
}

// ResetTo moves the expression to the given date.
func (e *Expression) ResetTo(t time.Time) {
	e.currentDate = NewCronDateFromTime(t, e.location)
	e.hasIterated = false
}

// Current returns the current date of the expression.
func (e *Expression) Current() time.Time { return e.currentDate.Time() }

// HasIterated reports whether Next or Prev succeeded since the last reset.
func (e *Expression) HasIterated() bool { return e.hasIterated }

// Fields returns the expression fields.
func (e *Expression) Fields() *Fields { return e.fields }

// Location returns the location the expression is evaluated in.
func (e *Expression) Location() *time.Location { return e.location }

// NthDayOfWeek returns the nth weekday of the month constraint, or zero
// if there is none.
func (e *Expression) NthDayOfWeek() int { return e.nthDayOfWeek }

// Stringify renders the expression in cron syntax, with or without the
// leading second field.
func (e *Expression) Stringify(includeSeconds bool) string {
	s := e.fields.Stringify(includeSeconds)
	if e.nthDayOfWeek == 0 {
		return s
	}
	i := strings.LastIndexByte(s, ' ')
	if strings.ContainsAny(s[i+1:], ",-/L") {
		return s
	}
	return s + "#" + strconv.Itoa(e.nthDayOfWeek)
}

// String renders the expression in cron syntax. The second field is left
// out when it is the default single zero.
func (e *Expression) String() string {
	second := e.fields.Second()
	return e.Stringify(second.Len() != 1 || !second.Contains(0))
}
