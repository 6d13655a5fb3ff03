// Package cronparser evaluates cron expressions: it parses six-field
// expressions with an optional second field and searches forward and
// backward for the dates they match.
//
// Dates are computed in a configurable location and stay correct across
// daylight saving transitions: an activation in a skipped hour fires at the
// first valid instant after the gap, and a repeated hour is visited once.
//
// Example:
//
//	expression, err := cronparser.Parse("0 */15 9-17 * * mon-fri",
//		cronparser.WithTimezone("Europe/Athens"))
//	if err != nil {
//		return err
//	}
//	next, err := expression.Next()
//
// Besides numbers, ranges, lists and steps, the day-of-month field accepts L
// for the last day of the month, and the day-of-week field accepts <day>L for
// the last given weekday of the month and <day>#n for its nth occurrence.
// When both day fields are restricted, a date matching either of them is
// scheduled.
package cronparser
