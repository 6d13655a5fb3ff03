package cronparser

import (
	"fmt"
	"time"
)

// loopLimit bounds the number of steps of a single schedule search.
const loopLimit = 10000

// dowSpan is the number of day-of-week values, Sunday counted twice.
const dowSpan = 8

// dstState remembers the local hours affected by a daylight saving
// transition within a single schedule search. Negative values mean unset.
type dstState struct {
	// start is the first hour after a skipped (spring forward) hour.
	start int
	// end is the repeated (fall back) hour.
	end int
}

func newDSTState() dstState {
	return dstState{start: -1, end: -1}
}

// observe records the transition implied by a shift from previousHour to
// the current hour of date.
func (s *dstState) observe(previousHour int, date *CronDate) {
	hour := date.Hour()
	switch hour - previousHour {
	case 2:
		s.start = hour
	case 0:
		if date.Minute() == 0 && date.Second() == 0 {
			s.end = hour
		}
	}
}

// search is the working state of one schedule search.
type search struct {
	fields  *Fields
	date    *CronDate
	reverse bool
	dst     dstState

	restrictedHours bool
	dowWildcard     bool
	lastDay         bool
	lastWeekdays    []int
}

func newSearch(fields *Fields, date *CronDate, reverse bool) *search {
	dayOfWeek := fields.DayOfWeek()
	return &search{
		fields:          fields,
		date:            date,
		reverse:         reverse,
		dst:             newDSTState(),
		restrictedHours: fields.Hour().Len() != 24,
		dowWildcard:     len(dayOfWeek.numbers()) == dowSpan,
		lastDay:         fields.DayOfMonth().HasLastDay(),
		lastWeekdays:    dayOfWeek.LastWeekdays(),
	}
}

// move steps the date by one unit in the search direction.
func (s *search) move(unit Unit) {
	if s.reverse {
		s.date.SubtractUnit(unit)
	} else {
		s.date.AddUnit(unit)
	}
}

// shift steps the date by one unit in the search direction, recording
// daylight saving transitions on sub-day units when the hour field is
// restricted.
func (s *search) shift(unit Unit) {
	if unit == Year || unit == Month || unit == Day {
		s.move(unit)
		return
	}
	previousHour := s.date.Hour()
	s.move(unit)
	if s.restrictedHours {
		s.dst.observe(previousHour, s.date)
	}
}

// matchDay applies the day-of-month and day-of-week rule: when both fields
// are restricted, either may match.
func (s *search) matchDay() bool {
	date := s.date
	dayOfMonth, dayOfWeek := s.fields.DayOfMonth(), s.fields.DayOfWeek()

	domMatch := dayOfMonth.Contains(date.Day()) ||
		s.lastDay && date.IsLastDayOfMonth()
	weekday := date.Weekday()
	dowMatch := dayOfWeek.Contains(weekday) ||
		weekday == 0 && dayOfWeek.Contains(7) ||
		s.matchLastWeekday(weekday)

	domWildcard := dayOfMonth.Len() >= daysInMonth[date.Month()-1]
	if !domMatch && (!dowMatch || s.dowWildcard) {
		return false
	}
	if domWildcard && !s.dowWildcard && !dowMatch {
		return false
	}
	return true
}

// matchLastWeekday reports whether the date is the last given weekday of
// its month for any of the <weekday>L values.
func (s *search) matchLastWeekday(weekday int) bool {
	for _, w := range s.lastWeekdays {
		if w%7 == weekday && s.date.IsLastWeekdayOfMonth() {
			return true
		}
	}
	return false
}

// matchNthWeekday reports whether day is the nth occurrence of its weekday
// within the month.
func matchNthWeekday(day, nth int) bool {
	return (day-1)/7+1 == nth
}

// findSchedule searches from a copy of the given date for the next (or the
// previous, if reverse is set) date matching the expression. The given date
// is not modified.
func (e *Expression) findSchedule(from *CronDate, reverse bool) (*CronDate, error) {
	s := newSearch(e.fields, from.Clone(), reverse)
	origin := from.Time()
	fields := e.fields

	for step := 1; step <= loopLimit; step++ {
		if reverse {
			if e.startDate != nil && s.date.Before(e.startDate) {
				return nil, ErrOutOfTimespanRange
			}
		} else if e.endDate != nil && s.date.After(e.endDate) {
			return nil, ErrOutOfTimespanRange
		}

		if !s.matchDay() {
			s.shift(Day)
			continue
		}

		if e.nthDayOfWeek > 0 && !matchNthWeekday(s.date.Day(), e.nthDayOfWeek) {
			s.shift(Day)
			continue
		}

		if !fields.Month().Contains(s.date.Month()) {
			s.shift(Month)
			continue
		}

		hour := s.date.Hour()
		if !fields.Hour().Contains(hour) {
			if s.dst.start != hour {
				s.dst.start = -1
				s.shift(Hour)
				continue
			}
			// hour follows a skipped hour; it stands in for the skipped
			// one only if that one is scheduled
			if !fields.Hour().Contains(hour - 1) {
				s.move(Hour)
				continue
			}
		} else if s.dst.end == hour && !reverse {
			// visit a repeated hour once
			s.dst.end = -1
			s.shift(Hour)
			continue
		}

		if !fields.Minute().Contains(s.date.Minute()) {
			s.shift(Minute)
			continue
		}

		if !fields.Second().Contains(s.date.Second()) {
			s.shift(Second)
			continue
		}

		// never return the date the search started from
		if s.date.Time().Equal(origin) {
			if !reverse || s.date.Nanosecond() == 0 {
				s.shift(Second)
			} else {
				s.date.TruncateSecond()
			}
			continue
		}

		e.logger.Trace("Schedule found.", "date", s.date.Time(), "steps", step,
			"reverse", reverse)
		return s.date, nil
	}

	e.logger.Debug("Schedule search loop limit exceeded.", "expression", e.String(),
		"from", origin, "reverse", reverse)
	return nil, fmt.Errorf("%w: no match within %d steps from %s",
		ErrLoopLimitExceeded, loopLimit, origin.Format(time.RFC3339))
}
