package commands

import (
	"context"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/pkgs/cll"
	"github.com/urfave/cli/v3"
)

type ExecCmd struct {
	coreFlags *core.Flags
}

func NewExecCmd(coreFlags *core.Flags) *ExecCmd {
	return &ExecCmd{coreFlags: coreFlags}
}

func (ec *ExecCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "exec",
		Usage:     "run a single task",
		ArgsUsage: "<hostname> <task>",
		Description: `Runs one task by name. A task declared inline for the host takes
precedence over a global task of the same name.`,
		Action: ec.exec,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (ec *ExecCmd) exec(ctx context.Context, c *cli.Command) error {
	if err := cll.ExactArgs(c, 2); err != nil {
		return err
	}

	r, err := newRunner(ec.coreFlags, c.Args().Get(0))
	if err != nil {
		return err
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	return r.Exec(ctx, c.Args().Get(1))
}
