package main

import "fmt"

// Exit codes for the canadavotes CLI.
const (
	ExitOK             = 0 // Everything was written.
	ExitInvalidArgs    = 1 // Invalid arguments, config or selection.
	ExitPartialFailure = 2 // Some exports failed, the rest were written.
	ExitTotalFailure   = 3 // No output produced.
)

// exitCodeError carries a process exit code through cobra's error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "canadavotes: some exports failed"
		case ExitTotalFailure:
			msg = "canadavotes: nothing was written"
		default:
			msg = "canadavotes: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
