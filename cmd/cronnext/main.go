// cronnext prints the upcoming (or past) dates of a cron expression, or
// the upcoming activations of the entries of a crontab file.
//
// Usage:
//
//	cronnext [flags] "<expression>"
//	cronnext [flags] --crontab FILE
//
// Settings may be read from a YAML file given with --config; flags that
// are set on the command line take precedence over it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/crontab"
	"github.com/reugn/go-cronparser/logger"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

// config holds the settings of a single run.
type config struct {
	Count    int    `yaml:"count" validate:"ne=0,min=-1000,max=1000"`
	Timezone string `yaml:"timezone" validate:"omitempty,timezone"`
	UTC      bool   `yaml:"utc"`
	Current  string `yaml:"current"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Seconds  bool   `yaml:"seconds"`
	Output   string `yaml:"output" validate:"oneof=text yaml"`
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error off"`
	Crontab  string `yaml:"crontab"`
}

func defaultConfig() config {
	return config{
		Count:    5,
		Output:   outputText,
		LogLevel: "warn",
	}
}

// loadConfig reads the YAML configuration file at path over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// options returns the expression options selected by the configuration.
func (c *config) options() []cronparser.Option {
	var opts []cronparser.Option
	switch {
	case c.UTC:
		opts = append(opts, cronparser.WithUTC())
	case c.Timezone != "":
		opts = append(opts, cronparser.WithTimezone(c.Timezone))
	}
	if c.Current != "" {
		opts = append(opts, cronparser.WithCurrentDateString(c.Current))
	}
	if c.Start != "" {
		opts = append(opts, cronparser.WithStartDateString(c.Start))
	}
	if c.End != "" {
		opts = append(opts, cronparser.WithEndDateString(c.End))
	}
	return opts
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		flagCfg    = defaultConfig()
		configPath string
	)
	flagSet := pflag.NewFlagSet("cronnext", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVarP(&flagCfg.Count, "count", "n", flagCfg.Count,
		"number of dates to print, negative to print previous dates")
	flagSet.StringVar(&flagCfg.Timezone, "tz", "", "IANA time zone to evaluate the expression in")
	flagSet.BoolVar(&flagCfg.UTC, "utc", false, "evaluate the expression in UTC")
	flagSet.StringVar(&flagCfg.Current, "current", "", "date to start from (default: now)")
	flagSet.StringVar(&flagCfg.Start, "start", "", "lower bound of the search")
	flagSet.StringVar(&flagCfg.End, "end", "", "upper bound of the search")
	flagSet.BoolVar(&flagCfg.Seconds, "seconds", false, "render the expression with the second field")
	flagSet.StringVarP(&flagCfg.Output, "output", "o", flagCfg.Output, "output format: text or yaml")
	flagSet.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level: trace, debug, info, warn, error or off")
	flagSet.StringVar(&flagCfg.Crontab, "crontab", "", "crontab file to list the upcoming activations of")
	flagSet.StringVar(&configPath, "config", "", "YAML configuration file")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  cronnext [flags] \"<expression>\"\n  cronnext [flags] --crontab FILE\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := flagCfg
	if configPath != "" {
		fileCfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = merge(fileCfg, flagCfg, flagSet)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339, NoColor: true}
	logger.SetDefault(logger.NewZerologLogger(
		zerolog.New(console).Level(logger.ZerologLevel(level)).With().Timestamp().Logger()))

	if cfg.Crontab != "" {
		if flagSet.NArg() > 0 {
			return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
		}
		return printCrontab(stdout, &cfg)
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return errors.New("expected a single cron expression argument")
	}
	return printExpression(stdout, flagSet.Arg(0), &cfg)
}

// merge overrides the file configuration with the flags set on the
// command line.
func merge(fileCfg, flagCfg config, flagSet *pflag.FlagSet) config {
	overrides := map[string]func(){
		"count":     func() { fileCfg.Count = flagCfg.Count },
		"tz":        func() { fileCfg.Timezone = flagCfg.Timezone },
		"utc":       func() { fileCfg.UTC = flagCfg.UTC },
		"current":   func() { fileCfg.Current = flagCfg.Current },
		"start":     func() { fileCfg.Start = flagCfg.Start },
		"end":       func() { fileCfg.End = flagCfg.End },
		"seconds":   func() { fileCfg.Seconds = flagCfg.Seconds },
		"output":    func() { fileCfg.Output = flagCfg.Output },
		"log-level": func() { fileCfg.LogLevel = flagCfg.LogLevel },
		"crontab":   func() { fileCfg.Crontab = flagCfg.Crontab },
	}
	flagSet.Visit(func(f *pflag.Flag) {
		if override, ok := overrides[f.Name]; ok {
			override()
		}
	})
	return fileCfg
}

// expressionReport is the YAML rendering of the dates of an expression.
type expressionReport struct {
	Expression string   `yaml:"expression"`
	Timezone   string   `yaml:"timezone"`
	Dates      []string `yaml:"dates"`
}

func printExpression(w io.Writer, text string, cfg *config) error {
	expression, err := cronparser.Parse(text, cfg.options()...)
	if err != nil {
		return err
	}

	dates := expression.Iterate(cfg.Count)
	if len(dates) == 0 {
		logger.Warn("No matching dates found.", "expression", text)
	}
	formatted := make([]string, len(dates))
	for i, date := range dates {
		formatted[i] = date.Format(time.RFC3339)
	}

	switch cfg.Output {
	case outputYAML:
		return writeYAML(w, expressionReport{
			Expression: expression.Stringify(cfg.Seconds),
			Timezone:   expression.Location().String(),
			Dates:      formatted,
		})
	default:
		_, err = fmt.Fprintln(w, strings.Join(append([]string{"# " + expression.Stringify(cfg.Seconds)},
			formatted...), "\n"))
		return err
	}
}

// activationReport is the YAML rendering of a crontab activation.
type activationReport struct {
	Time    string `yaml:"time"`
	Line    int    `yaml:"line"`
	Command string `yaml:"command"`
}

func printCrontab(w io.Writer, cfg *config) error {
	if cfg.Count < 0 {
		return errors.New("crontab activations can only be listed forward")
	}
	opts := cfg.options()
	tab, err := crontab.ParseFile(cfg.Crontab, opts...)
	if err != nil {
		return err
	}
	for line, lineErr := range tab.Errors {
		logger.Warn("Skipped crontab line.", "line", line, "error", lineErr)
	}

	from := time.Now()
	if cfg.Current != "" {
		tz := cfg.Timezone
		if cfg.UTC {
			tz = "UTC"
		}
		current, err := cronparser.ParseCronDate(cfg.Current, tz)
		if err != nil {
			return err
		}
		from = current.Time()
	}

	activations := tab.Upcoming(from, cfg.Count)
	switch cfg.Output {
	case outputYAML:
		reports := make([]activationReport, len(activations))
		for i, a := range activations {
			reports[i] = activationReport{
				Time:    a.Time.Format(time.RFC3339),
				Line:    a.Entry.Line,
				Command: a.Entry.Command,
			}
		}
		return writeYAML(w, reports)
	default:
		for _, a := range activations {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", a.Time.Format(time.RFC3339), a.Entry.Command); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
