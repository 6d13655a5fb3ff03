// Package crontab reads crontab files: variable assignments and scheduled
// commands, with the schedules evaluated by the cronparser package.
package crontab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/logger"
)

// scheduleFields is the number of fields of a crontab schedule, which has
// no second field.
const scheduleFields = 5

var variablePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// Entry is a scheduled command of a crontab.
type Entry struct {
	// Expression is the schedule of the command.
	Expression *cronparser.Expression
	// Command is the rest of the line after the schedule.
	Command string
	// Line is the 1-based line number of the entry.
	Line int
	// Source is the trimmed text of the line.
	Source string
}

// Crontab is the content of a crontab file.
type Crontab struct {
	// Variables holds the NAME=value assignments.
	Variables map[string]string
	// Expressions holds the schedules of Entries, in the same order.
	Expressions []*cronparser.Expression
	// Entries holds the scheduled commands.
	Entries []Entry
	// Errors maps the text of every rejected line to the reason.
	Errors map[string]error
}

func newCrontab() *Crontab {
	return &Crontab{
		Variables: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// ParseString parses the crontab content in data. The options are applied
// to every schedule. Lines that cannot be parsed are recorded in Errors.
func ParseString(data string, opts ...cronparser.Option) *Crontab {
	tab := newCrontab()
	for i, line := range strings.Split(data, "\n") {
		tab.parseLine(i+1, line, opts)
	}
	return tab
}

// Parse reads and parses crontab content from r.
func Parse(r io.Reader, opts ...cronparser.Option) (*Crontab, error) {
	tab := newCrontab()
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		tab.parseLine(lineNumber, scanner.Text(), opts)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read crontab: %w", err)
	}
	return tab, nil
}

// ParseFile reads and parses the crontab file at path.
func ParseFile(path string, opts ...cronparser.Option) (*Crontab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, opts...)
}

func (tab *Crontab) parseLine(lineNumber int, line string, opts []cronparser.Option) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	if match := variablePattern.FindStringSubmatch(line); match != nil {
		tab.Variables[match[1]] = match[2]
		return
	}

	schedule, command, err := splitEntry(line)
	if err == nil {
		var expression *cronparser.Expression
		if expression, err = cronparser.Parse(schedule, opts...); err == nil {
			tab.Expressions = append(tab.Expressions, expression)
			tab.Entries = append(tab.Entries, Entry{
				Expression: expression,
				Command:    command,
				Line:       lineNumber,
				Source:     line,
			})
			return
		}
	}

	logger.Debug("Rejected crontab line.", "line", lineNumber, "error", err)
	tab.Errors[line] = err
}

// splitEntry separates the schedule of a crontab line from its command.
func splitEntry(line string) (string, string, error) {
	tokens := strings.Fields(line)
	n := scheduleFields
	if strings.HasPrefix(tokens[0], "@") {
		n = 1
	}
	if len(tokens) <= n {
		return "", "", fmt.Errorf("%w: missing command in %q", cronparser.ErrCronParse, line)
	}

	schedule := strings.Join(tokens[:n], " ")
	// keep the command spacing intact
	rest := line
	for range n {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		rest = rest[strings.IndexFunc(rest, unicode.IsSpace):]
	}
	return schedule, strings.TrimSpace(rest), nil
}
