package cronparser_test

import (
	"testing"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/internal/assert"
)

func everyDay() cronparser.FieldValues {
	return cronparser.FieldValues{
		Second:     cronparser.Nums(0),
		Minute:     cronparser.Nums(0),
		Hour:       cronparser.Nums(0),
		DayOfMonth: cronparser.NumRange(1, 31, 1),
		Month:      cronparser.NumRange(1, 12, 1),
		DayOfWeek:  cronparser.NumRange(0, 7, 1),
	}
}

func TestNewFields(t *testing.T) {
	t.Parallel()
	values := everyDay()
	values.Minute = cronparser.Nums(30, 0)
	fields, err := cronparser.NewFields(values)
	assert.IsNil(t, err)

	assert.Equal(t, fields.Minute().Values(), cronparser.Nums(0, 30))
	assert.Equal(t, fields.Field(cronparser.MinuteField), fields.Minute())
	assert.Equal(t, fields.DayOfMonth().Len(), 31)
	assert.Equal(t, fields.DayOfWeek().Len(), 8)
	assert.Equal(t, fields.String(), "0,30 0 * * *")
	assert.Equal(t, fields.Stringify(true), "0 0,30 0 * * *")
}

func TestNewFieldsSingleMonth(t *testing.T) {
	t.Parallel()
	values := everyDay()
	values.Month = cronparser.Nums(2)
	values.DayOfMonth = append(cronparser.Nums(1, 15, 30, 31), cronparser.LastDay())
	fields, err := cronparser.NewFields(values)
	assert.IsNil(t, err)

	assert.Equal(t, fields.DayOfMonth().Values(),
		[]cronparser.Value{cronparser.Num(1), cronparser.Num(15), cronparser.LastDay()})
	assert.Equal(t, fields.String(), "0 0 1,15,L 2 *")

	values.Month = cronparser.Nums(4)
	values.DayOfMonth = cronparser.NumRange(1, 31, 1)
	fields, err = cronparser.NewFields(values)
	assert.IsNil(t, err)
	assert.Equal(t, fields.DayOfMonth().Len(), 30)
	assert.Equal(t, fields.String(), "0 0 * 4 *")
}

func TestNewFieldsInvalidDayOfMonth(t *testing.T) {
	t.Parallel()
	values := everyDay()
	values.Month = cronparser.Nums(2)
	values.DayOfMonth = cronparser.Nums(30, 31)
	_, err := cronparser.NewFields(values)
	assert.ErrorIs(t, err, cronparser.ErrInvalidDayOfMonth)

	values.Month = cronparser.Nums(4)
	values.DayOfMonth = cronparser.Nums(31)
	_, err = cronparser.NewFields(values)
	assert.ErrorIs(t, err, cronparser.ErrInvalidDayOfMonth)
}

func TestNewFieldsValidationError(t *testing.T) {
	t.Parallel()
	values := everyDay()
	values.Hour = nil
	_, err := cronparser.NewFields(values)
	assert.ErrorIs(t, err, cronparser.ErrValidation)

	values = everyDay()
	values.Month = cronparser.Nums(13)
	_, err = cronparser.NewFields(values)
	assert.ErrorIs(t, err, cronparser.ErrValidation)
}

func TestFieldsStringifySundayAlias(t *testing.T) {
	t.Parallel()
	values := everyDay()
	values.DayOfWeek = cronparser.Nums(0, 6, 7)
	fields, err := cronparser.NewFields(values)
	assert.IsNil(t, err)
	assert.Equal(t, fields.Stringify(false), "0 0 * * 0,6")

	values.DayOfWeek = cronparser.Nums(1, 7)
	fields, err = cronparser.NewFields(values)
	assert.IsNil(t, err)
	assert.Equal(t, fields.Stringify(false), "0 0 * * 0,1")
}
