package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner starts an external process and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner launches real processes with the standard streams passed
// through, so compiler diagnostics land on the user's terminal untouched.
type execRunner struct {
	dir string
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &ExitError{Command: commandLine(name, args), Code: exit.ExitCode()}
	}
	return &StartError{Command: commandLine(name, args), Err: err}
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// A StartError reports an external command that could not be launched,
// usually because the executable is not installed.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start `%s`: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// An ExitError reports an external command that ran and exited non-zero.
// The process's own diagnostics have already been streamed to the user,
// so the message stays terse.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string { return "aborting at first failed command" }
