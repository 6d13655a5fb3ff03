package cronparser

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Range is a run-length encoded arithmetic progression of field values.
// A marker value always forms a single-item Range.
type Range struct {
	Start Value
	Count int
	End   int
	Step  int
}

func singleRange(v Value) Range {
	return Range{Start: v, Count: 1, End: v.n}
}

// Compact scans the sorted values from left to right and yields the ranges
// they consist of. Numbers are merged while the gap between neighbors stays
// equal to the first observed step; a two-item range that cannot be
// extended is split back into two single-item ranges.
func Compact(values []Value) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		var (
			current Range
			open    bool
		)
		flush := func() bool {
			if !open {
				return true
			}
			open = false
			if current.Count == 2 {
				return yield(singleRange(current.Start)) && yield(singleRange(Num(current.End)))
			}
			return yield(current)
		}

		for _, v := range values {
			switch {
			case !v.IsNumeric():
				if !flush() || !yield(singleRange(v)) {
					return
				}
			case !open:
				current, open = singleRange(v), true
			case current.Count == 1:
				current = Range{Start: current.Start, Count: 2, End: v.n, Step: v.n - current.Start.n}
			case current.Step == v.n-current.End:
				current.Count++
				current.End = v.n
			case current.Count == 2:
				// keep the last item as the start of a new guess
				if !yield(singleRange(current.Start)) {
					return
				}
				current = Range{Start: Num(current.End), Count: 2, End: v.n, Step: v.n - current.End}
			default:
				if !flush() {
					return
				}
				current, open = singleRange(v), true
			}
		}
		flush()
	}
}

// StringifyField renders sorted field values in compact cron syntax, given
// the numeric bounds of the field.
func StringifyField(values []Value, min, max int) string {
	ranges := slices.Collect(Compact(values))
	if len(ranges) == 1 && ranges[0].Count > 1 {
		r := ranges[0]
		if r.Step == 1 && r.Start.n == min && r.End == max {
			return "*"
		}
		if r.Step != 1 && r.Start.n == min && r.End == max-r.Step+1 {
			return "*/" + strconv.Itoa(r.Step)
		}
	}

	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r.Count == 1 {
			parts = append(parts, r.Start.String())
			continue
		}

		start := r.Start.n
		if r.Step == 1 {
			parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(r.End))
			continue
		}

		multiplier := r.Count
		if start == 0 {
			multiplier--
		}
		switch {
		case r.Step*multiplier > r.End:
			for value := start; value <= r.End; value += r.Step {
				parts = append(parts, strconv.Itoa(value))
			}
		case r.End == max-r.Step+1:
			parts = append(parts, strconv.Itoa(start)+"/"+strconv.Itoa(r.Step))
		default:
			parts = append(parts, strconv.Itoa(start)+"-"+strconv.Itoa(r.End)+"/"+strconv.Itoa(r.Step))
		}
	}
	return strings.Join(parts, ",")
}
