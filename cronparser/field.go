package cronparser

import (
	"fmt"
	"slices"
	"strconv"
)

// FieldKind identifies one of the six schedule fields.
type FieldKind int

// Schedule fields, in expression order.
const (
	SecondField FieldKind = iota
	MinuteField
	HourField
	DayOfMonthField
	MonthField
	DayOfWeekField
)

type fieldConstraint struct {
	name     string
	min      int
	max      int
	lastDay  bool // accepts L
	lastWDay bool // accepts <weekday>L
}

var fieldConstraints = [...]fieldConstraint{
	SecondField:     {name: "second", min: 0, max: 59},
	MinuteField:     {name: "minute", min: 0, max: 59},
	HourField:       {name: "hour", min: 0, max: 23},
	DayOfMonthField: {name: "dayOfMonth", min: 1, max: 31, lastDay: true},
	MonthField:      {name: "month", min: 1, max: 12},
	DayOfWeekField:  {name: "dayOfWeek", min: 0, max: 7, lastWDay: true},
}

// fieldKinds lists all the field kinds in expression order.
var fieldKinds = [...]FieldKind{
	SecondField, MinuteField, HourField, DayOfMonthField, MonthField, DayOfWeekField,
}

// String returns the field name.
func (k FieldKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return fieldConstraints[k].name
}

// Min returns the smallest numeric value of the field.
func (k FieldKind) Min() int { return fieldConstraints[k].min }

// Max returns the largest numeric value of the field.
func (k FieldKind) Max() int { return fieldConstraints[k].max }

func (k FieldKind) valid() bool {
	return k >= SecondField && k <= DayOfWeekField
}

type valueKind uint8

const (
	numericValue valueKind = iota
	lastDayValue
	lastWeekdayValue
)

// Value is a single element of a schedule field: either a number or one of
// the L markers.
type Value struct {
	kind valueKind
	n    int
}

// Num returns a numeric Value.
func Num(n int) Value {
	return Value{kind: numericValue, n: n}
}

// Nums returns numeric Values for the given numbers.
func Nums(ns ...int) []Value {
	values := make([]Value, len(ns))
	for i, n := range ns {
		values[i] = Num(n)
	}
	return values
}

// NumRange returns numeric Values from..to (inclusive) with the given step.
func NumRange(from, to, step int) []Value {
	if step < 1 {
		step = 1
	}
	var values []Value
	for i := from; i <= to; i += step {
		values = append(values, Num(i))
	}
	return values
}

// LastDay returns the L marker of the day-of-month field.
func LastDay() Value {
	return Value{kind: lastDayValue}
}

// LastWeekday returns the <weekday>L marker of the day-of-week field,
// matching the last given weekday of the month.
func LastWeekday(weekday int) Value {
	return Value{kind: lastWeekdayValue, n: weekday}
}

// IsNumeric reports whether v is a plain number.
func (v Value) IsNumeric() bool { return v.kind == numericValue }

// IsLastDay reports whether v is the L day-of-month marker.
func (v Value) IsLastDay() bool { return v.kind == lastDayValue }

// IsLastWeekday reports whether v is a <weekday>L day-of-week marker.
func (v Value) IsLastWeekday() bool { return v.kind == lastWeekdayValue }

// Number returns the number of a numeric Value, or the weekday of a
// <weekday>L marker.
func (v Value) Number() int { return v.n }

// String returns the cron representation of the value.
func (v Value) String() string {
	switch v.kind {
	case lastDayValue:
		return "L"
	case lastWeekdayValue:
		return strconv.Itoa(v.n) + "L"
	default:
		return strconv.Itoa(v.n)
	}
}

// Compare orders numbers ascending before markers, which are ordered by
// their cron representation.
func (v Value) Compare(other Value) int {
	switch {
	case v.IsNumeric() && other.IsNumeric():
		return v.n - other.n
	case v.IsNumeric():
		return -1
	case other.IsNumeric():
		return 1
	}
	a, b := v.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Field is a validated, sorted and immutable set of values of one schedule field.
type Field struct {
	kind   FieldKind
	values []Value
}

// NewField validates values against the field constraints and returns a
// sorted Field.
func NewField(kind FieldKind, values []Value) (*Field, error) {
	if !kind.valid() {
		return nil, illegalArgumentError(fmt.Sprintf("unknown field kind %d", int(kind)))
	}
	if len(values) == 0 {
		return nil, validationError(fmt.Sprintf("field %s contains no values", kind))
	}
	constraint := fieldConstraints[kind]
	for _, v := range values {
		switch v.kind {
		case numericValue:
			if v.n < constraint.min || v.n > constraint.max {
				return nil, validationError(fmt.Sprintf("got value %d expected range %d-%d",
					v.n, constraint.min, constraint.max))
			}
		case lastDayValue:
			if !constraint.lastDay {
				return nil, validationError(fmt.Sprintf("field %s does not accept L", kind))
			}
		case lastWeekdayValue:
			if !constraint.lastWDay {
				return nil, validationError(fmt.Sprintf("field %s does not accept %s", kind, v))
			}
			if v.n < constraint.min || v.n > constraint.max {
				return nil, validationError(fmt.Sprintf("invalid last weekday of the month %s", v))
			}
		}
	}

	sorted := slices.Clone(values)
	slices.SortFunc(sorted, Value.Compare)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, validationError(fmt.Sprintf("field %s contains duplicate values", kind))
		}
	}
	return &Field{kind: kind, values: sorted}, nil
}

// Kind returns the field kind.
func (f *Field) Kind() FieldKind { return f.kind }

// Values returns a copy of the sorted field values.
func (f *Field) Values() []Value { return slices.Clone(f.values) }

// Len returns the number of values in the field.
func (f *Field) Len() int { return len(f.values) }

// Contains reports whether the field holds the number n.
func (f *Field) Contains(n int) bool {
	// numbers come first, so the search stops at the first larger value
	for _, v := range f.values {
		if !v.IsNumeric() || v.n > n {
			return false
		}
		if v.n == n {
			return true
		}
	}
	return false
}

// HasLastDay reports whether the field holds the L day-of-month marker.
func (f *Field) HasLastDay() bool {
	return slices.ContainsFunc(f.values, Value.IsLastDay)
}

// LastWeekdays returns the weekdays of the <weekday>L markers in the field.
func (f *Field) LastWeekdays() []int {
	var weekdays []int
	for _, v := range f.values {
		if v.IsLastWeekday() {
			weekdays = append(weekdays, v.n)
		}
	}
	return weekdays
}

// numbers returns the numeric values of the field.
func (f *Field) numbers() []int {
	numbers := make([]int, 0, len(f.values))
	for _, v := range f.values {
		if v.IsNumeric() {
			numbers = append(numbers, v.n)
		}
	}
	return numbers
}

// String returns the compacted cron representation of the field. Day of
// week 7 is rendered as 0, see Fields.Stringify.
func (f *Field) String() string {
	values, upper := f.values, f.kind.Max()
	if f.kind == DayOfWeekField {
		values, upper = foldSundayAlias(values), 6
	}
	return StringifyField(values, f.kind.Min(), upper)
}

// filter returns a Field holding the values accepted by keep.
func (f *Field) filter(keep func(Value) bool) *Field {
	values := make([]Value, 0, len(f.values))
	for _, v := range f.values {
		if keep(v) {
			values = append(values, v)
		}
	}
	return &Field{kind: f.kind, values: values}
}
