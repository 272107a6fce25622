package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	optionparser "github.com/lukedeo/option-parser"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses argv (program name first) and greets. It is main without the
// process exit, so tests can drive it.
func run(outW, logW io.Writer, argv []string) error {
	level, err := logLevel(argv)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(logW, &slog.HandlerOptions{Level: level}))

	p := optionparser.NewParser("Greets someone, optionally several times.").
		SetFailurePolicy(optionparser.ReturnOnFailure).
		SetLogger(logger)
	if err := register(p); err != nil {
		return err
	}

	err = p.ParseOrError(argv)
	if errors.Is(err, optionparser.ErrHelp) {
		fmt.Fprint(outW, p.GenerateUsage())
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w\n%s", p.ProgName(), err, p.GenerateSynopsis())
	}

	return greet(outW, logger, p)
}

// logLevel reads --log-level ahead of the real parse so the parser itself
// can log at that level.
func logLevel(argv []string) (slog.Level, error) {
	pre := optionparser.NewParser("").
		SetFailurePolicy(optionparser.ReturnOnFailure).
		SetHelpEnabled(false)
	if err := levelOption().Register(pre); err != nil {
		return 0, err
	}
	if err := pre.ParseOrError(argv, optionparser.WithIgnoreUnknown(true)); err != nil {
		return 0, err
	}

	s, err := pre.GetString("log-level")
	if err != nil {
		return 0, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", s, err)
	}
	return level, nil
}

func levelOption() *optionparser.Option {
	return optionparser.NewOption("--log-level").
		SetMode(optionparser.StoreValue).
		SetDefault("warn").
		SetMetavar("LEVEL").
		SetHelp("One of debug, info, warn, error.")
}

func register(p *optionparser.Parser) error {
	opts := []*optionparser.Option{
		optionparser.NewOption("--verbose", "-v").
			SetHelp("Also print the input and tags."),
		optionparser.NewOption("--name", "-n").
			SetMode(optionparser.StoreValue).
			SetDefault("world").
			SetHelp("Who to greet."),
		optionparser.NewOption("--tags", "-t").
			SetMode(optionparser.StoreMultValues).
			SetMetavar("TAG").
			SetHelp("Labels printed with the greeting."),
		optionparser.NewOption("--count", "-c").
			SetMode(optionparser.StoreValue).
			SetDefault(1).
			SetHelp("How many times to greet."),
		levelOption(),
		optionparser.NewOption("input").
			SetMode(optionparser.StoreValue).
			SetRequired(true).
			SetHelp("Name of the input the greeting is about."),
	}
	for _, o := range opts {
		if err := o.Register(p); err != nil {
			return err
		}
	}
	return nil
}

func greet(outW io.Writer, logger *slog.Logger, p *optionparser.Parser) error {
	name, err := p.GetString("name")
	if err != nil {
		return err
	}
	count, err := optionparser.Get[int](p, "count")
	if err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", count)
	}
	input, err := p.GetString("input")
	if err != nil {
		return err
	}
	verbose, err := p.GetBool("verbose")
	if err != nil {
		return err
	}

	logger.Info("Greeting.", "name", name, "count", count, "input", input)
	for range count {
		fmt.Fprintf(outW, "Hello, %s!\n", name)
	}

	if verbose {
		fmt.Fprintf(outW, "input: %s\n", input)
		tags, err := p.GetStrings("tags")
		if errors.Is(err, optionparser.ErrNoValue) {
			tags = nil
		} else if err != nil {
			return err
		}
		fmt.Fprintf(outW, "tags: %s\n", strings.Join(tags, ", "))
	}
	return nil
}
