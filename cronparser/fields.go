package cronparser

import (
	"slices"
	"strings"
)

// daysInMonth is the day count of each month, with February counted as a
// leap month. Leap years are resolved by the schedule search.
var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// FieldValues holds the raw values of the six schedule fields.
type FieldValues struct {
	Second     []Value
	Minute     []Value
	Hour       []Value
	DayOfMonth []Value
	Month      []Value
	DayOfWeek  []Value
}

func (fv *FieldValues) get(kind FieldKind) []Value {
	switch kind {
	case SecondField:
		return fv.Second
	case MinuteField:
		return fv.Minute
	case HourField:
		return fv.Hour
	case DayOfMonthField:
		return fv.DayOfMonth
	case MonthField:
		return fv.Month
	default:
		return fv.DayOfWeek
	}
}

// Fields is the validated collection of the six schedule fields.
type Fields struct {
	fields [len(fieldKinds)]*Field
}

// NewFields validates every field and returns the collection.
//
// When the month field holds a single month, day-of-month values beyond that
// month's day count are dropped; NewFields fails with ErrInvalidDayOfMonth
// if none of the requested days fits the month.
func NewFields(values FieldValues) (*Fields, error) {
	fields := &Fields{}
	for _, kind := range fieldKinds {
		field, err := NewField(kind, values.get(kind))
		if err != nil {
			return nil, err
		}
		fields.fields[kind] = field
	}

	month := fields.fields[MonthField]
	if month.Len() == 1 {
		monthNumber := month.values[0].n
		days := daysInMonth[monthNumber-1]
		dayOfMonth := fields.fields[DayOfMonthField]
		if first := dayOfMonth.values[0]; first.IsNumeric() && first.n > days {
			return nil, invalidDayOfMonthError(first.n, monthNumber, days)
		}
		fields.fields[DayOfMonthField] = dayOfMonth.filter(func(v Value) bool {
			return !v.IsNumeric() || v.n <= days
		})
	}
	return fields, nil
}

// Field returns the field of the given kind.
func (f *Fields) Field(kind FieldKind) *Field { return f.fields[kind] }

// Second returns the second field.
func (f *Fields) Second() *Field { return f.fields[SecondField] }

// Minute returns the minute field.
func (f *Fields) Minute() *Field { return f.fields[MinuteField] }

// Hour returns the hour field.
func (f *Fields) Hour() *Field { return f.fields[HourField] }

// DayOfMonth returns the day-of-month field.
func (f *Fields) DayOfMonth() *Field { return f.fields[DayOfMonthField] }

// Month returns the month field.
func (f *Fields) Month() *Field { return f.fields[MonthField] }

// DayOfWeek returns the day-of-week field, with Sunday as 0 unless the
// field lists both 0 and 7.
func (f *Fields) DayOfWeek() *Field { return f.fields[DayOfWeekField] }

// Stringify renders the fields in cron syntax, with or without the leading
// second field.
//
// Day of week 7 is rendered as 0, so a field listing every weekday once,
// such as 1-7, is rendered as *. The result parses to a wildcard day of
// week, which no longer widens a restricted day of month: "0 0 1 * 1-7"
// fires every day while its rendering "0 0 1 * *" fires on the first.
func (f *Fields) Stringify(includeSeconds bool) string {
	parts := make([]string, 0, len(fieldKinds))
	for _, kind := range fieldKinds {
		if kind == SecondField && !includeSeconds {
			continue
		}
		field := f.fields[kind]
		values, lower, upper := field.values, kind.Min(), kind.Max()
		switch kind {
		case DayOfMonthField:
			if month := f.fields[MonthField]; month.Len() == 1 {
				upper = daysInMonth[month.values[0].n-1]
			}
		case DayOfWeekField:
			// prefer the 0-6 range
			values, upper = foldSundayAlias(values), 6
		}
		parts = append(parts, StringifyField(values, lower, upper))
	}
	return strings.Join(parts, " ")
}

// String renders the fields in cron syntax, including the second field
// unless it is the default single zero.
func (f *Fields) String() string {
	second := f.fields[SecondField]
	return f.Stringify(second.Len() != 1 || second.values[0] != Num(0))
}

// foldSundayAlias maps the day-of-week 7 onto 0.
func foldSundayAlias(values []Value) []Value {
	i := slices.Index(values, Num(7))
	if i < 0 {
		return values
	}
	folded := slices.Delete(slices.Clone(values), i, i+1)
	if !slices.Contains(folded, Num(0)) {
		folded = slices.Insert(folded, 0, Num(0))
	}
	return folded
}
