package optionparser

import (
	"io"
	"os"
)

// ExitFunc terminates the program with a status code.
type ExitFunc func(int)

var osExit ExitFunc = os.Exit
var stderrWriter io.Writer = os.Stderr
var stdoutWriter io.Writer = os.Stdout

// SetStderrWriter redirects diagnostics, mainly for tests.
func SetStderrWriter(writer io.Writer) {
	stderrWriter = writer
}

// SetStdoutWriter redirects help and dump output, mainly for tests.
func SetStdoutWriter(writer io.Writer) {
	stdoutWriter = writer
}

// SetExitFunc replaces os.Exit for ParseOrExit.
func SetExitFunc(exitFunc ExitFunc) {
	osExit = exitFunc
}
