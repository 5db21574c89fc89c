package commands

import (
	"context"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/pkgs/cll"
	"github.com/urfave/cli/v3"
)

type InstallCmd struct {
	coreFlags *core.Flags
}

func NewInstallCmd(coreFlags *core.Flags) *InstallCmd {
	return &InstallCmd{coreFlags: coreFlags}
}

func (ic *InstallCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "install",
		Usage:     "run every task of a host, then apply its links",
		ArgsUsage: "<hostname>",
		Description: `Runs the host's tasks in the order they are declared, then creates every
link declared for the host. Task references are checked against the global
task pool before anything runs; the first failing task or link stops the run.

Use "." as the hostname to select this machine's hostname.`,
		Action: ic.install,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (ic *InstallCmd) install(ctx context.Context, c *cli.Command) error {
	if err := cll.ExactArgs(c, 1); err != nil {
		return err
	}

	r, err := newRunner(ic.coreFlags, c.Args().First())
	if err != nil {
		return err
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	return r.Install(ctx)
}
