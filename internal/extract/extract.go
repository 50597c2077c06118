// Package extract drives the external unp4k utility that unpacks the
// game's Data.p4k archive. The actual process execution sits behind the
// [Runner] interface so workflows can be tested without spawning anything.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Runner executes an external command in a working directory and returns
// its exit code. A non-nil error means the command could not be run at
// all; a non-zero exit code is not an error at this level.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (int, error)
}

// ExitError reports a non-zero exit from the unpacking utility.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}

// ExecRunner runs commands via the operating system.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args in dir, blocking until exit.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return -1, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return 0, nil
}

// Unpack invokes unp4k on the archive at p4kPath, extracting entries
// matching filter into dir. A non-zero exit is surfaced as an [ExitError]
// so the calling workflow can abort its remaining steps.
func Unpack(ctx context.Context, r Runner, dir, unp4kPath, p4kPath, filter string) error {
	code, err := r.Run(ctx, dir, unp4kPath, p4kPath, filter)
	if err != nil {
		return fmt.Errorf("failed to invoke unpacker: %w", err)
	}

	if code != 0 {
		return &ExitError{Tool: "unp4k", Code: code}
	}

	return nil
}
