package optionparser

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func demoParser(t *testing.T) *Parser {
	t.Helper()
	p := NewParser("Demo parser.").SetWrapWidth(64).SetProgName("prog")
	mustAdd(t, p, "--verbose", "-v").SetHelp("Print more.")
	mustAdd(t, p, "--name", "-n").SetMode(StoreValue).SetDefault("anon").SetHelp("Who to greet.")
	mustAdd(t, p, "--tags", "-t").SetMode(StoreMultValues).
		SetHelp("Tags to attach to the greeting, in the order given on the command line.")
	mustAdd(t, p, "--count").SetMode(StoreValue).SetRequired(true).SetHelp("How many times.")
	mustAdd(t, p, "input").SetRequired(true).SetHelp("Input file.")
	return p
}

func TestGenerateUsage(t *testing.T) {
	withoutColor(t)
	p := demoParser(t)

	expected := `usage: prog [-h] --count COUNT <input> [options]

Demo parser.

    --help, -h           Display this help message and exit.
    --verbose, -v        Print more.
    --name, -n NAME      Who to greet. (default: anon)
    --tags, -t TAGS1 [TAGS2, TAGS3, ...]
                         Tags to attach to the greeting, in the
                         order given on the command line.
    --count COUNT        How many times. (required)
    input                Input file. (required)
`
	assert.Equal(t, expected, p.GenerateUsage())
}

func TestGenerateUsageIsStable(t *testing.T) {
	withoutColor(t)
	p := demoParser(t)

	first := p.GenerateUsage()
	assert.Equal(t, first, p.GenerateUsage())
	assert.Equal(t, 1, strings.Count(first, "--help"))
}

func TestHelpRequestPrintsUsage(t *testing.T) {
	t.Setenv("OPTPARSE_COLOR", "never")

	var stdout bytes.Buffer
	SetStdoutWriter(&stdout)
	defer SetStdoutWriter(os.Stdout)

	exitCode := -1
	SetExitFunc(func(code int) { exitCode = code })
	defer SetExitFunc(os.Exit)

	p := demoParser(t)
	p.ParseOrExit([]string{"/opt/bin/demo", "-h"})

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, p.GenerateUsage(), stdout.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "usage: prog [-h] --count COUNT <input> [options]\n"))
}

func TestPrintHelp(t *testing.T) {
	withoutColor(t)

	var stdout bytes.Buffer
	SetStdoutWriter(&stdout)
	defer SetStdoutWriter(os.Stdout)

	p := NewParser("").SetProgName("tool")
	mustAdd(t, p, "--flag")
	p.PrintHelp()

	expected := `usage: tool [-h] [options]

    --help, -h           Display this help message and exit.
    --flag
`
	assert.Equal(t, expected, stdout.String())
}

func TestSynopsisShowsRequiredShortSpellingAndVariadic(t *testing.T) {
	withoutColor(t)

	p := NewParser("").SetProgName("tool").SetHelpEnabled(false)
	mustAdd(t, p, "--output", "-o").SetMode(StoreValue).SetRequired(true).SetMetavar("FILE")
	mustAdd(t, p, "--all", "-a").SetRequired(true)
	mustAdd(t, p, "src")
	mustAdd(t, p, "rest").SetMode(StoreMultValues)

	assert.Equal(t, "usage: tool -o FILE -a [src] [rest...] [options]", p.GenerateSynopsis())
}

func TestUsageWithoutDescription(t *testing.T) {
	withoutColor(t)

	p := NewParser("").SetProgName("tool").SetWrapWidth(80)
	mustAdd(t, p, "--a-very-long-option-name", "-x").SetMode(StoreValue).SetHelp("Help.")

	expected := `usage: tool [-h] [options]

    --help, -h           Display this help message and exit.
    --a-very-long-option-name, -x A-VERY-LONG-OPTION-NAME
                         Help.
`
	assert.Equal(t, expected, p.GenerateUsage())
}

func TestHelpColumnHasAFloor(t *testing.T) {
	withoutColor(t)

	p := NewParser("").SetProgName("tool").SetWrapWidth(10).SetHelpEnabled(false)
	mustAdd(t, p, "--flag").SetHelp("one two three four five six")

	expected := `usage: tool [options]

    --flag               one two three four
                         five six
`
	assert.Equal(t, expected, p.GenerateUsage())
}

func TestWrapWidthFallsBackWhenNotATerminal(t *testing.T) {
	var stdout bytes.Buffer
	SetStdoutWriter(&stdout)
	defer SetStdoutWriter(os.Stdout)

	assert.Equal(t, 80, NewParser("").effectiveWrapWidth())
	assert.Equal(t, 100, NewParser("").SetWrapWidth(100).effectiveWrapWidth())
}

func TestColorEnvAlways(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	t.Setenv("OPTPARSE_COLOR", "always")
	p := NewParser("").SetProgName("tool")

	err := p.ParseOrError([]string{"tool", "-h"})
	require.True(t, errors.Is(err, ErrHelp))
	assert.False(t, color.NoColor)
	assert.Contains(t, p.GenerateSynopsis(), "\x1b[")
}

func TestColorEnvNever(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	t.Setenv("OPTPARSE_COLOR", "never")
	p := NewParser("").SetProgName("tool")

	require.NoError(t, p.ParseOrError([]string{"tool"}))
	assert.True(t, color.NoColor)
	assert.Equal(t, "usage: tool [-h] [options]", p.GenerateSynopsis())
}
