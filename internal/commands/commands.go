// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/internal/runner"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const defaultTerminalWidth = 80

// newRunner loads the config and builds a runner for the host named by
// hostArg.
func newRunner(coreFlags *core.Flags, hostArg string) (*runner.Runner, error) {
	hostname, err := core.Hostname(hostArg)
	if err != nil {
		return nil, err
	}

	cfg, err := core.LoadConfig(coreFlags.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("host", hostname).Str("config", cfg.ConfigDir).Msg("runner ready")

	return runner.New(hostname, &cfg, runner.WithTerminalWidth(terminalWidth())), nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// interruptible cancels ctx on SIGINT or SIGTERM so running tasks are stopped.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
