// Package execx provides the external command execution port used by the
// migration workflow. Commands are described as argv arrays, never as
// interpolated shell strings, so package and version names are passed to the
// kernel verbatim.
package execx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Text returns the command's stdout as a string.
func (r *Result) Text() string {
	return string(r.Stdout)
}

// JSON unmarshals the command's stdout into v.
func (r *Result) JSON(v any) error {
	if err := json.Unmarshal(r.Stdout, v); err != nil {
		return fmt.Errorf("failed to parse command output as JSON: %w", err)
	}
	return nil
}

// Runner executes external commands. Implementations must return a non-nil
// Result together with the error when the command ran but exited non-zero,
// so callers can inspect stderr while deciding whether to tolerate the
// failure.
type Runner interface {
	Run(ctx context.Context, argv []string) (*Result, error)
}

// ExecRunner runs commands via os/exec. When Verbose is set, each command
// line is echoed to stderr in shell-quoted form before it runs.
type ExecRunner struct {
	Verbose bool
}

// Run executes argv and captures stdout and stderr separately. A non-zero
// exit status is returned as an error wrapping the exit code, with the
// captured output still available on the Result.
func (e *ExecRunner) Run(ctx context.Context, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	if e.Verbose {
		fmt.Fprintln(os.Stderr, "+", shellquote.Join(argv...))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("%s exited with status %d (stderr: %s)",
				argv[0], result.ExitCode, stderr.String())
		}
		return result, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}

	return result, nil
}
