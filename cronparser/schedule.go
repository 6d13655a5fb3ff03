package cronparser

import (
	"time"

	robfig "github.com/robfig/cron/v3"
)

// Schedule adapts an Expression to the robfig/cron Schedule interface, so
// that expressions can drive a robfig cron.Cron runner.
//
// A Schedule does not move the current date of its Expression and is safe
// for concurrent use as long as the Expression is not modified.
type Schedule struct {
	expression *Expression
}

var _ robfig.Schedule = (*Schedule)(nil)

// Schedule returns the robfig/cron adapter of the expression.
func (e *Expression) Schedule() *Schedule {
	return &Schedule{expression: e}
}

// Next returns the first activation time later than t, or the zero time
// if there is none.
func (s *Schedule) Next(t time.Time) time.Time {
	from := NewCronDateFromTime(t, s.expression.location)
	date, err := s.expression.findSchedule(from, false)
	if err != nil {
		return time.Time{}
	}
	return date.Time()
}

// Expression returns the adapted expression.
func (s *Schedule) Expression() *Expression {
	return s.expression
}
