package process

import (
	"errors"
	"os/exec"
	"syscall"
)

// ConvertReturnCode maps a raw "-N" return code (terminated by signal N) to the
// shell convention 128+N. Non-negative codes are returned unchanged.
func ConvertReturnCode(code int) int {
	if code < 0 {
		return 128 - code
	}
	return code
}

// ExitCode extracts the effective exit code from an error returned by exec.Cmd.Run.
// It reports false when the error is not an exit status (e.g. the binary was not found).
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal()), true
	}
	return ConvertReturnCode(exitErr.ExitCode()), true
}
