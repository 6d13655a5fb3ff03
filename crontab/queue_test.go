package crontab_test

import (
	"math"
	"testing"
	"time"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/crontab"
	"github.com/reugn/go-cronparser/internal/assert"
)

func TestUpcoming(t *testing.T) {
	t.Parallel()
	tab := crontab.ParseString(`
0 * * * * hourly
*/20 * * * * every-twenty
30 1 * * * nightly
`, cronparser.WithUTC())
	assert.Equal(t, len(tab.Errors), 0)

	from, err := time.Parse(time.RFC3339, "2021-09-01T00:50:00Z")
	assert.IsNil(t, err)
	activations := tab.Upcoming(from, 7)

	type activation struct {
		time    string
		command string
	}
	expected := []activation{
		{"2021-09-01T01:00:00Z", "hourly"},
		{"2021-09-01T01:00:00Z", "every-twenty"},
		{"2021-09-01T01:20:00Z", "every-twenty"},
		{"2021-09-01T01:30:00Z", "nightly"},
		{"2021-09-01T01:40:00Z", "every-twenty"},
		{"2021-09-01T02:00:00Z", "hourly"},
		{"2021-09-01T02:00:00Z", "every-twenty"},
	}
	assert.Equal(t, len(activations), len(expected))
	for i, a := range activations {
		assert.Equal(t, a.Time.Format(time.RFC3339), expected[i].time)
		assert.Equal(t, a.Entry.Command, expected[i].command)
	}

	// the expressions are left untouched
	for _, expression := range tab.Expressions {
		assert.False(t, expression.HasIterated())
	}
}

func TestUpcomingExhausted(t *testing.T) {
	t.Parallel()
	tab := crontab.ParseString("0 12 * * * noon\n", cronparser.WithUTC(),
		cronparser.WithEndDateString("2021-09-03T00:00:00Z"))

	from, err := time.Parse(time.RFC3339, "2021-09-01T00:00:00Z")
	assert.IsNil(t, err)
	activations := tab.Upcoming(from, 10)
	assert.Equal(t, len(activations), 2)
	assert.Equal(t, activations[1].Time.Format(time.RFC3339), "2021-09-02T12:00:00Z")

	assert.Equal(t, len(tab.Upcoming(from, math.MaxInt)), 2)
	assert.Equal(t, len(tab.Upcoming(from, math.MinInt)), 0)
	assert.Equal(t, len(tab.Upcoming(from, 0)), 0)
	assert.Equal(t, len(crontab.ParseString("").Upcoming(from, 3)), 0)
}
