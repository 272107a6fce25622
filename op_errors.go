package optionparser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHelp is returned by ParseOrError when help was requested via -h or --help.
// Callers compare against it to tell a help request from a parse failure.
var ErrHelp = errors.New("help invoked")

// ErrDump is returned by ParseOrError when WithDump(true) was passed.
var ErrDump = errors.New("dump invoked")

// ErrUnknownField is wrapped by LookupError when a key was never registered.
var ErrUnknownField = errors.New("not a valid field")

// ErrNoValue is wrapped by LookupError when a registered key holds no value.
var ErrNoValue = errors.New("no value stored")

// ConfigError reports an invalid option definition. These are bugs in the
// program using the parser, not user input errors.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

func NewConfigError(msg string) *ConfigError {
	return &ConfigError{msg: msg}
}

// SyntaxError reports a malformed or unrecognized token.
type SyntaxError struct {
	Token  string
	Reason string

	unknown bool // no option or positional slot could take Token
}

func (e *SyntaxError) Error() string {
	return e.Reason
}

func newSyntaxError(token, format string, a ...any) *SyntaxError {
	return &SyntaxError{Token: token, Reason: fmt.Sprintf(format, a...)}
}

// MissingArgsError reports either a value-taking flag with nothing to take
// (Flag set) or required options that never matched (Missing set).
type MissingArgsError struct {
	Flag    string
	Missing []string
}

func (e *MissingArgsError) Error() string {
	if e.Flag != "" {
		return fmt.Sprintf("flag '%s' requires an argument", e.Flag)
	}
	return fmt.Sprintf("Missing required flags: %s.", strings.Join(e.Missing, ", "))
}

// LookupError is returned by value queries. It always wraps either
// ErrUnknownField, ErrNoValue or the conversion error.
type LookupError struct {
	Key   string
	Value string
	Type  string
	Err   error
}

func (e *LookupError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownField):
		return fmt.Sprintf("Tried to access value for field '%s' which is not a valid field.", e.Key)
	case errors.Is(e.Err, ErrNoValue):
		return fmt.Sprintf("field '%s' has no value", e.Key)
	}
	return fmt.Sprintf("cannot parse value %q of field '%s' as %s: %v", e.Value, e.Key, e.Type, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// helpInvokedError carries help state from parse to the output layer.
type helpInvokedError struct {
	output string
}

func (e *helpInvokedError) Error() string {
	return ErrHelp.Error()
}

func (e *helpInvokedError) Unwrap() error {
	return ErrHelp
}

type dumpInvokedError struct {
	output string
}

func (e *dumpInvokedError) Error() string {
	return ErrDump.Error()
}

func (e *dumpInvokedError) Unwrap() error {
	return ErrDump
}
