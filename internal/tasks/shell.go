package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"
)

// RunFailureError is returned when a command exits unsuccessfully.
type RunFailureError struct {
	Command string
	Status  string
}

func (e *RunFailureError) Error() string {
	return fmt.Sprintf("command %q failed: %s", e.Command, e.Status)
}

// Shell runs commands through the platform shell, streaming output straight
// to the configured writers.
type Shell struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Dir    string
}

// NewShell returns a Shell wired to the process's standard streams.
func NewShell() *Shell {
	return &Shell{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// Run executes command and blocks until it exits. No timeout is applied; the
// child is only stopped when ctx is cancelled.
func (s *Shell) Run(ctx context.Context, command string) error {
	name, args := shellCommand(command)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.Stdin = s.Stdin
	cmd.Dir = s.Dir

	log.Debug().Str("shell", name).Str("command", command).Msg("running command")

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &RunFailureError{Command: command, Status: exitErr.ProcessState.String()}
	}

	return fmt.Errorf("failed to start %q: %w", command, err)
}

func shellCommand(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}

	return "sh", []string{"-c", command}
}
