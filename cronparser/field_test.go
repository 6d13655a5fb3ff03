package cronparser_test

import (
	"slices"
	"testing"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/internal/assert"
)

func TestNewFieldSortsValues(t *testing.T) {
	t.Parallel()
	field, err := cronparser.NewField(cronparser.DayOfMonthField,
		[]cronparser.Value{cronparser.LastDay(), cronparser.Num(15), cronparser.Num(1)})
	assert.IsNil(t, err)

	assert.Equal(t, field.Kind(), cronparser.DayOfMonthField)
	assert.Equal(t, field.Values(),
		[]cronparser.Value{cronparser.Num(1), cronparser.Num(15), cronparser.LastDay()})
	assert.Equal(t, field.Len(), 3)
	assert.True(t, field.Contains(15))
	assert.False(t, field.Contains(2))
	assert.True(t, field.HasLastDay())
	assert.Equal(t, field.String(), "1,15,L")
}

func TestNewFieldValuesAreCopied(t *testing.T) {
	t.Parallel()
	values := cronparser.Nums(3, 1, 2)
	field, err := cronparser.NewField(cronparser.HourField, values)
	assert.IsNil(t, err)

	values[0] = cronparser.Num(23)
	assert.False(t, field.Contains(23))

	copied := field.Values()
	copied[0] = cronparser.Num(23)
	assert.False(t, field.Contains(23))
}

func TestNewFieldError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		kind   cronparser.FieldKind
		values []cronparser.Value
	}{
		{"empty", cronparser.SecondField, nil},
		{"below range", cronparser.DayOfMonthField, cronparser.Nums(0)},
		{"above range", cronparser.MinuteField, cronparser.Nums(60)},
		{"hour above range", cronparser.HourField, cronparser.Nums(1, 24)},
		{"duplicates", cronparser.MonthField, cronparser.Nums(1, 2, 1)},
		{"duplicate markers", cronparser.DayOfMonthField,
			[]cronparser.Value{cronparser.LastDay(), cronparser.LastDay()}},
		{"last day on hours", cronparser.HourField, []cronparser.Value{cronparser.LastDay()}},
		{"last weekday on days", cronparser.DayOfMonthField,
			[]cronparser.Value{cronparser.LastWeekday(5)}},
		{"last weekday out of range", cronparser.DayOfWeekField,
			[]cronparser.Value{cronparser.LastWeekday(8)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cronparser.NewField(tt.kind, tt.values)
			assert.ErrorIs(t, err, cronparser.ErrValidation)
		})
	}

	_, err := cronparser.NewField(cronparser.FieldKind(6), cronparser.Nums(1))
	assert.ErrorIs(t, err, cronparser.ErrIllegalArgument)
}

func TestFieldSortedInvariant(t *testing.T) {
	t.Parallel()
	inputs := [][]cronparser.Value{
		cronparser.Nums(59, 0, 30, 15),
		append(cronparser.Nums(7, 0, 3), cronparser.LastWeekday(5), cronparser.LastWeekday(1)),
		cronparser.NumRange(0, 59, 7),
	}
	kinds := []cronparser.FieldKind{
		cronparser.SecondField, cronparser.DayOfWeekField, cronparser.MinuteField,
	}

	for i, values := range inputs {
		field, err := cronparser.NewField(kinds[i], values)
		assert.IsNil(t, err)
		sorted := field.Values()
		assert.True(t, slices.IsSortedFunc(sorted, cronparser.Value.Compare))
		assert.Equal(t, len(slices.Compact(slices.Clone(sorted))), len(sorted))
	}
}

func TestFieldLastWeekdays(t *testing.T) {
	t.Parallel()
	field, err := cronparser.NewField(cronparser.DayOfWeekField,
		[]cronparser.Value{cronparser.LastWeekday(5), cronparser.Num(1), cronparser.LastWeekday(0)})
	assert.IsNil(t, err)

	assert.Equal(t, field.LastWeekdays(), []int{0, 5})
	assert.False(t, field.HasLastDay())
	assert.False(t, field.Contains(5))
	assert.Equal(t, field.String(), "1,0L,5L")
}

func TestFieldString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind     cronparser.FieldKind
		values   []cronparser.Value
		expected string
	}{
		{cronparser.SecondField, cronparser.NumRange(0, 59, 1), "*"},
		{cronparser.MinuteField, cronparser.NumRange(0, 59, 5), "*/5"},
		{cronparser.HourField, cronparser.Nums(9), "9"},
		{cronparser.DayOfWeekField, cronparser.NumRange(0, 7, 1), "*"},
		{cronparser.DayOfWeekField, cronparser.Nums(5, 6, 7), "0,5,6"},
		{cronparser.DayOfWeekField, cronparser.Nums(1, 2, 3, 4, 5), "1-5"},
		{cronparser.MonthField, cronparser.NumRange(1, 12, 1), "*"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			field, err := cronparser.NewField(tt.kind, tt.values)
			assert.IsNil(t, err)
			assert.Equal(t, field.String(), tt.expected)
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()
	assert.True(t, cronparser.Num(5).IsNumeric())
	assert.Equal(t, cronparser.Num(5).Number(), 5)
	assert.Equal(t, cronparser.Num(5).String(), "5")

	assert.True(t, cronparser.LastDay().IsLastDay())
	assert.False(t, cronparser.LastDay().IsNumeric())
	assert.Equal(t, cronparser.LastDay().String(), "L")

	assert.True(t, cronparser.LastWeekday(3).IsLastWeekday())
	assert.Equal(t, cronparser.LastWeekday(3).Number(), 3)
	assert.Equal(t, cronparser.LastWeekday(3).String(), "3L")

	assert.True(t, cronparser.Num(31).Compare(cronparser.LastDay()) < 0)
	assert.True(t, cronparser.LastWeekday(1).Compare(cronparser.LastWeekday(2)) < 0)
	assert.Equal(t, cronparser.Num(2).Compare(cronparser.Num(2)), 0)
}

func TestFieldKind(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cronparser.DayOfMonthField.String(), "dayOfMonth")
	assert.Equal(t, cronparser.DayOfWeekField.Min(), 0)
	assert.Equal(t, cronparser.DayOfWeekField.Max(), 7)
	assert.Equal(t, cronparser.FieldKind(9).String(), "FieldKind(9)")
}

func TestNumRange(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cronparser.NumRange(1, 10, 3), cronparser.Nums(1, 4, 7, 10))
	assert.Equal(t, cronparser.NumRange(5, 5, 0), cronparser.Nums(5))
	assert.Equal(t, len(cronparser.NumRange(5, 4, 1)), 0)
}
