package optionparser

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpParseOrError(t *testing.T) {
	t.Setenv("OPTPARSE_COLOR", "never")

	p := NewParser("Test application")
	mustAdd(t, p, "--input", "-i").SetMode(StoreValue).SetHelp("Input file path")

	err := p.ParseOrError([]string{"testapp", "--input", "test.txt"}, WithDump(true))

	assert.True(t, errors.Is(err, ErrDump))
	_, err = p.GetString("input")
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestDumpParseOrExit(t *testing.T) {
	t.Setenv("OPTPARSE_COLOR", "never")

	p := NewParser("Test application")
	mustAdd(t, p, "--input", "-i").SetMode(StoreValue).SetDefault("in.txt").SetMetavar("PATH")
	mustAdd(t, p, "--force").SetRequired(true)
	mustAdd(t, p, "file").SetMode(StoreValue)

	var stdout bytes.Buffer
	SetStdoutWriter(&stdout)
	defer SetStdoutWriter(os.Stdout)

	var exitCalled bool
	var exitCode int
	SetExitFunc(func(code int) {
		exitCalled = true
		exitCode = code
	})
	defer SetExitFunc(os.Exit)

	p.ParseOrExit([]string{"testapp", "--input", "test.txt"}, WithDump(true))

	assert.True(t, exitCalled)
	assert.Equal(t, 0, exitCode)

	expected := `Option Parser Dump
==================================================

Parse Configuration:
  Ignore Unknown: false
  Dump Enabled: true

Parser Information:
  Program: testapp
  Description: Test application
  Help Enabled: true
  Failure Policy: exit_on_failure
  Wrap Width: auto

Arguments to Parse:
  [0]: "--input"
  [1]: "test.txt"

Options (4):
  [0] help: --help, -h (store_true)
  [1] input: --input, -i (store_value, default="in.txt", metavar=PATH)
  [2] force: --force (store_true, required)
  [3] file: file (store_value)

Positional Slots:
  [0] file (store_value)

Stored Values:
  <empty>

Environment:
  OPTPARSE_COLOR: never
`
	assert.Equal(t, expected, stdout.String())
}

func TestGenerateDumpAfterParse(t *testing.T) {
	t.Setenv("OPTPARSE_COLOR", "never")

	p := NewParser("").SetFailurePolicy(ReturnOnFailure).SetWrapWidth(72)
	mustAdd(t, p, "--input", "-i").SetMode(StoreValue).SetDefault("in.txt")
	mustAdd(t, p, "--tags").SetMode(StoreMultValues)
	mustAdd(t, p, "file")

	argv := []string{"testapp", "x.txt", "--tags", "a", "b"}
	require.NoError(t, p.EatArguments(argv, WithIgnoreUnknown(true)))

	dump := p.GenerateDump(argv, WithIgnoreUnknown(true))
	assert.Contains(t, dump, "  Ignore Unknown: true\n  Dump Enabled: false\n")
	assert.Contains(t, dump, "  Description: <not set>\n")
	assert.Contains(t, dump, "  Failure Policy: return_on_failure\n  Wrap Width: 72\n")

	// extraction order, with the injected default last
	assert.Contains(t, dump, `Stored Values:
  file: ["x.txt"]
  tags: ["a" "b"]
  input: ["in.txt"]
`)
}

func TestDumpWithoutArguments(t *testing.T) {
	withoutColor(t)

	p := NewParser("").SetHelpEnabled(false)
	dump := p.GenerateDump([]string{"testapp"})

	assert.Contains(t, dump, "Arguments to Parse:\n  <no arguments>\n")
	assert.Contains(t, dump, "Options (0):\n\nPositional Slots:\n  none\n")
}
