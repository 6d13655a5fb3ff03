package cronparser

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrIllegalArgument    = errors.New("illegal argument")
	ErrCronParse          = errors.New("parse cron expression")
	ErrValidation         = errors.New("validation error")
	ErrInvalidDayOfMonth  = errors.New("invalid explicit day of month definition")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrOutOfTimespanRange = errors.New("out of the timespan range")
	ErrLoopLimitExceeded  = errors.New("schedule search loop limit exceeded")
)

// illegalArgumentError returns an illegal argument error with a custom
// error message, which unwraps to ErrIllegalArgument.
func illegalArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, message)
}

// cronParseError returns a cron parse error with a custom error message,
// which unwraps to ErrCronParse.
func cronParseError(message string) error {
	return fmt.Errorf("%w: %s", ErrCronParse, message)
}

// validationError returns a validation error with a custom error message,
// which unwraps to ErrValidation.
func validationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// invalidDayOfMonthError returns an error which unwraps to ErrInvalidDayOfMonth.
func invalidDayOfMonthError(day, month, days int) error {
	return fmt.Errorf("%w: day %d exceeds %d days of month %d",
		ErrInvalidDayOfMonth, day, days, month)
}

// invalidTimestampError returns an error which unwraps to ErrInvalidTimestamp.
func invalidTimestampError(timestamp string) error {
	return fmt.Errorf("%w: unhandled timestamp %q", ErrInvalidTimestamp, timestamp)
}
