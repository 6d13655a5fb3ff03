package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/reugn/go-cronparser/internal/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := run(args, &stdout, io.Discard)
	return stdout.String(), err
}

func TestRun_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "next",
			args: []string{"--utc", "--current", "2024-01-01T00:00:00Z", "-n", "3", "0 */15 * * * *"},
			want: []string{
				"# */15 * * * *",
				"2024-01-01T00:15:00Z",
				"2024-01-01T00:30:00Z",
				"2024-01-01T00:45:00Z",
			},
		},
		{
			name: "previous",
			args: []string{"--utc", "--current", "2024-01-01T00:00:00Z", "--count=-2", "@daily"},
			want: []string{
				"# 0 0 * * *",
				"2023-12-31T00:00:00Z",
				"2023-12-30T00:00:00Z",
			},
		},
		{
			name: "time zone",
			args: []string{"--tz", "Europe/Athens", "--current", "2024-01-01 10:00:00", "-n", "1", "0 12 * * *"},
			want: []string{
				"# 0 12 * * *",
				"2024-01-01T12:00:00+02:00",
			},
		},
		{
			name: "end bound",
			args: []string{"--utc", "--current", "2024-01-01T00:00:00Z", "--end", "2024-01-03T00:00:00Z",
				"-n", "5", "0 0 12 * * *"},
			want: []string{
				"# 0 12 * * *",
				"2024-01-01T12:00:00Z",
				"2024-01-02T12:00:00Z",
			},
		},
		{
			name: "seconds",
			args: []string{"--utc", "--seconds", "--current", "2024-01-01T00:00:00Z", "-n", "1", "@hourly"},
			want: []string{
				"# 0 0 * * * *",
				"2024-01-01T01:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			assert.IsNil(t, err)
			assert.Equal(t, strings.Split(strings.TrimSpace(out), "\n"), tt.want)
		})
	}
}

func TestRun_YAML(t *testing.T) {
	out, err := runCommand(t, "--utc", "--current", "2024-03-01T00:00:00Z", "-n", "2",
		"--output", "yaml", "0 9 * * mon-fri")
	assert.IsNil(t, err)

	var report expressionReport
	assert.IsNil(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, report, expressionReport{
		Expression: "0 9 * * 1-5",
		Timezone:   "UTC",
		Dates:      []string{"2024-03-01T09:00:00Z", "2024-03-04T09:00:00Z"},
	})
}

func TestRun_Config(t *testing.T) {
	path := writeFile(t, "cronnext.yaml", `
count: 2
utc: true
current: "2024-01-01T00:00:00Z"
output: text
log_level: "off"
`)

	out, err := runCommand(t, "--config", path, "0 0 1 * *")
	assert.IsNil(t, err)
	assert.Equal(t, strings.Split(strings.TrimSpace(out), "\n"), []string{
		"# 0 0 1 * *",
		"2024-02-01T00:00:00Z",
		"2024-03-01T00:00:00Z",
	})

	// flags take precedence over the file
	out, err = runCommand(t, "--config", path, "-n", "1", "0 0 1 * *")
	assert.IsNil(t, err)
	assert.Equal(t, strings.Split(strings.TrimSpace(out), "\n"), []string{
		"# 0 0 1 * *",
		"2024-02-01T00:00:00Z",
	})
}

func TestRun_Crontab(t *testing.T) {
	path := writeFile(t, "crontab", `
SHELL=/bin/sh
*/30 * * * * /usr/bin/sync
0 1 * * * /usr/bin/backup --full
bad line
`)

	out, err := runCommand(t, "--utc", "--current", "2024-01-01T00:45:00Z", "-n", "3", "--crontab", path)
	assert.IsNil(t, err)
	assert.Equal(t, strings.Split(strings.TrimSpace(out), "\n"), []string{
		"2024-01-01T01:00:00Z\t/usr/bin/sync",
		"2024-01-01T01:00:00Z\t/usr/bin/backup --full",
		"2024-01-01T01:30:00Z\t/usr/bin/sync",
	})

	out, err = runCommand(t, "--utc", "--current", "2024-01-01T00:45:00Z", "-n", "1",
		"--crontab", path, "-o", "yaml")
	assert.IsNil(t, err)
	var reports []activationReport
	assert.IsNil(t, yaml.Unmarshal([]byte(out), &reports))
	assert.Equal(t, reports, []activationReport{
		{Time: "2024-01-01T01:00:00Z", Line: 3, Command: "/usr/bin/sync"},
	})
}

func TestRun_Errors(t *testing.T) {
	crontabPath := writeFile(t, "crontab", "* * * * * true\n")
	invalidConfig := writeFile(t, "invalid.yaml", "output: json\n")
	unknownField := writeFile(t, "unknown.yaml", "colour: red\n")

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"no expression", []string{}, "expected a single cron expression"},
		{"two expressions", []string{"* * * * *", "@daily"}, "expected a single cron expression"},
		{"parse error", []string{"61 * * * *"}, "validation error"},
		{"zero count", []string{"-n", "0", "@daily"}, "invalid configuration"},
		{"output", []string{"-o", "json", "@daily"}, "invalid configuration"},
		{"time zone", []string{"--tz", "Mars/Olympus", "@daily"}, "invalid configuration"},
		{"log level", []string{"--log-level", "loud", "@daily"}, "invalid configuration"},
		{"invalid config", []string{"--config", invalidConfig, "@daily"}, "invalid configuration"},
		{"unknown config field", []string{"--config", unknownField, "@daily"}, "decode config"},
		{"missing config", []string{"--config", "/nonexistent/cronnext.yaml", "@daily"}, "open config"},
		{"crontab argument", []string{"--crontab", crontabPath, "@daily"}, "unexpected argument"},
		{"crontab backward", []string{"--crontab", crontabPath, "-n", "-1"}, "only be listed forward"},
		{"unknown flag", []string{"--frequency", "@daily"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.IsNil(t, run([]string{"--help"}, &stdout, &stderr))
	assert.Equal(t, stdout.Len(), 0)
	assert.True(t, strings.Contains(stderr.String(), "--crontab"))
}
