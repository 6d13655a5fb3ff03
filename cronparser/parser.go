package cronparser

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// predefined cron expressions
	predefined = map[string]string{
		"@yearly":   "0 0 1 1 *",
		"@annually": "0 0 1 1 *",
		"@monthly":  "0 0 1 * *",
		"@weekly":   "0 0 * * 0",
		"@daily":    "0 0 * * *",
		"@hourly":   "0 * * * *",
	}

	// defaults of the omitted leading fields
	defaultTokens = [len(fieldKinds)]string{"0", "*", "*", "*", "*", "*"}

	monthAliases = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}
	dayAliases = map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}

	aliasPattern       = regexp.MustCompile(`[A-Za-z]{3}`)
	lastWeekdayPattern = regexp.MustCompile(`^[0-7]L$`)
)

// Parse parses a cron expression and returns an Expression evaluating it.
//
// The expression consists of one to six whitespace separated fields:
//
//	┌────────────── second (optional)
//	│ ┌──────────── minute
//	│ │ ┌────────── hour
//	│ │ │ ┌──────── day of month
//	│ │ │ │ ┌────── month
//	│ │ │ │ │ ┌──── day of week
//	│ │ │ │ │ │
//	* * * * * *
//
// Omitted leading fields take their defaults, a zero second and a wildcard
// for the rest. Predefined expressions such as @daily are accepted as well.
func Parse(expression string, opts ...Option) (*Expression, error) {
	fields, nth, err := ParseFields(expression)
	if err != nil {
		return nil, err
	}
	if nth > 0 {
		opts = append(slices.Clip(opts), WithNthDayOfWeek(nth))
	}
	return NewExpression(fields, opts...)
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(expression string, opts ...Option) *Expression {
	cronExpression, err := Parse(expression, opts...)
	if err != nil {
		panic(err)
	}
	return cronExpression
}

// ParseFields parses a cron expression into its fields. It also returns the
// nth weekday of the month given with the # syntax, or zero.
func ParseFields(expression string) (*Fields, int, error) {
	expression = strings.TrimSpace(expression)
	if value, ok := predefined[expression]; ok {
		expression = value
	}

	tokens := strings.Fields(expression)
	if len(tokens) > len(fieldKinds) {
		return nil, 0, cronParseError(fmt.Sprintf("invalid cron expression %q: too many fields",
			expression))
	}
	padded := defaultTokens
	copy(padded[len(padded)-len(tokens):], tokens)

	var (
		values FieldValues
		nth    int
		err    error
	)
	if padded[DayOfWeekField], nth, err = splitNthDayOfWeek(padded[DayOfWeekField]); err != nil {
		return nil, 0, err
	}
	targets := [...]*[]Value{
		&values.Second, &values.Minute, &values.Hour,
		&values.DayOfMonth, &values.Month, &values.DayOfWeek,
	}
	for _, kind := range fieldKinds {
		if *targets[kind], err = parseField(kind, padded[kind]); err != nil {
			return nil, 0, err
		}
	}

	fields, err := NewFields(values)
	if err != nil {
		return nil, 0, err
	}
	return fields, nth, nil
}

// splitNthDayOfWeek separates the #n suffix from a day-of-week token.
func splitNthDayOfWeek(token string) (string, int, error) {
	base, suffix, found := strings.Cut(token, "#")
	if !found {
		return token, 0, nil
	}
	if strings.ContainsAny(base, ",-/Ll#") {
		return "", 0, cronParseError(fmt.Sprintf(
			"invalid day of week %q: # cannot be combined with list, range, step or L", token))
	}
	nth, ok := parseNumber(suffix)
	if !ok || nth < 1 || nth > 5 {
		return "", 0, cronParseError(fmt.Sprintf(
			"invalid day of week %q: nth weekday must be within 1-5", token))
	}
	return base, nth, nil
}

// parseField parses a single field token into its values.
func parseField(kind FieldKind, token string) ([]Value, error) {
	switch kind {
	case DayOfMonthField, DayOfWeekField:
		token = strings.ReplaceAll(token, "?", "*")
	}

	var err error
	switch kind {
	case MonthField:
		token, err = replaceAliases(kind, token, monthAliases)
	case DayOfWeekField:
		token, err = replaceAliases(kind, token, dayAliases)
	}
	if err != nil {
		return nil, err
	}

	if strings.ContainsAny(token, "Ww") {
		return nil, cronParseError(fmt.Sprintf("invalid %s %q: W is not supported", kind, token))
	}
	for _, c := range token {
		if !strings.ContainsRune("0123456789,-*/L", c) {
			return nil, cronParseError(fmt.Sprintf("invalid %s %q: unexpected character %q",
				kind, token, c))
		}
	}

	var values []Value
	for _, item := range strings.Split(token, ",") {
		itemValues, err := parseItem(kind, item)
		if err != nil {
			return nil, err
		}
		values = append(values, itemValues...)
	}

	slices.SortFunc(values, Value.Compare)
	values = slices.Compact(values)
	if kind == DayOfWeekField {
		// numbers sort first; keep 7 only when every day is listed
		numbers := slices.IndexFunc(values, func(v Value) bool { return !v.IsNumeric() })
		if numbers < 0 {
			numbers = len(values)
		}
		if numbers < dowSpan {
			values = foldSundayAlias(values)
		}
	}
	return values, nil
}

// replaceAliases substitutes the three-letter names of a field.
func replaceAliases(kind FieldKind, token string, aliases map[string]int) (string, error) {
	var err error
	replaced := aliasPattern.ReplaceAllStringFunc(token, func(alias string) string {
		n, ok := aliases[strings.ToLower(alias)]
		if !ok {
			if err == nil {
				err = cronParseError(fmt.Sprintf("invalid %s %q: unknown alias %q",
					kind, token, alias))
			}
			return alias
		}
		return strconv.Itoa(n)
	})
	return replaced, err
}

// parseItem parses a single list item: a number, a range or a wildcard,
// optionally followed by a step, or one of the L markers.
func parseItem(kind FieldKind, item string) ([]Value, error) {
	if strings.Contains(item, "L") {
		return parseLastItem(kind, item)
	}

	base, stepText, stepped := strings.Cut(item, "/")
	step := 1
	if stepped {
		var ok bool
		if step, ok = parseNumber(stepText); !ok {
			return nil, cronParseError(fmt.Sprintf("invalid %s step %q", kind, item))
		}
		if step == 0 {
			return nil, validationError(fmt.Sprintf("%s cannot repeat at every 0 time", kind))
		}
	}

	var from, to int
	switch {
	case base == "*":
		from, to = kind.Min(), kind.Max()
	case strings.Contains(base, "-"):
		fromText, toText, _ := strings.Cut(base, "-")
		var okFrom, okTo bool
		from, okFrom = parseNumber(fromText)
		to, okTo = parseNumber(toText)
		if !okFrom || !okTo {
			return nil, cronParseError(fmt.Sprintf("invalid %s range %q", kind, item))
		}
		if err := checkBounds(kind, from, to); err != nil {
			return nil, err
		}
		if from > to {
			return nil, cronParseError(fmt.Sprintf("invalid %s range %q", kind, item))
		}
	default:
		var ok bool
		if from, ok = parseNumber(base); !ok {
			return nil, cronParseError(fmt.Sprintf("invalid %s value %q", kind, item))
		}
		if err := checkBounds(kind, from, from); err != nil {
			return nil, err
		}
		to = from
		if stepped {
			// a stepped single value runs to the end of the field
			to = kind.Max()
		}
	}
	return NumRange(from, to, step), nil
}

// parseLastItem parses L on the day of month and <weekday>L on the day of week.
func parseLastItem(kind FieldKind, item string) ([]Value, error) {
	switch {
	case kind == DayOfMonthField && item == "L":
		return []Value{LastDay()}, nil
	case kind == DayOfWeekField && lastWeekdayPattern.MatchString(item):
		return []Value{LastWeekday(int(item[0]-'0') % 7)}, nil
	}
	return nil, cronParseError(fmt.Sprintf("invalid %s value %q", kind, item))
}

func checkBounds(kind FieldKind, from, to int) error {
	if from < kind.Min() || to > kind.Max() {
		return validationError(fmt.Sprintf("got value %d-%d expected range %d-%d",
			from, to, kind.Min(), kind.Max()))
	}
	return nil
}

// parseNumber parses an unsigned decimal number.
func parseNumber(s string) (int, bool) {
	if s == "" || len(s) > 4 {
		return 0, false
	}
	n := 0
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
