// Package bash runs external commands and captures their combined output.
package bash

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Shell interprets the command lines given to Run.
var Shell = "sh"

// waitDelay bounds how long a cancelled command's children may keep its
// output open.
const waitDelay = 2 * time.Second

// CommandError is returned when a command cannot start or exits non-zero.
// Output holds everything it wrote to stdout and stderr.
type CommandError struct {
	Command  string
	Output   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed: %v: %s", e.Command, e.Err, out)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run executes command through the shell and returns its combined output.
func Run(ctx context.Context, command string) (string, error) {
	return run(exec.CommandContext(ctx, Shell, "-c", command), command)
}

// Exec runs program with args without a shell, so args need no quoting.
func Exec(ctx context.Context, program string, args ...string) (string, error) {
	line := strings.Join(append([]string{program}, args...), " ")
	return run(exec.CommandContext(ctx, program, args...), line)
}

func run(cmd *exec.Cmd, line string) (string, error) {
	var combined bytes.Buffer
	cmd.WaitDelay = waitDelay
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	err := cmd.Run()
	if err == nil {
		return combined.String(), nil
	}

	cerr := &CommandError{Command: line, Output: combined.String(), ExitCode: -1, Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
	}
	return cerr.Output, cerr
}
