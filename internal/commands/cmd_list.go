package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/internal/runner"
	"github.com/hay-kot/ellipsis/pkgs/printer"
	"github.com/hay-kot/ellipsis/pkgs/styles"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	coreFlags *core.Flags
}

func NewListCmd(coreFlags *core.Flags) *ListCmd {
	return &ListCmd{coreFlags: coreFlags}
}

func (lc *ListCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "list hosts, or the tasks and links of one host",
		ArgsUsage: "[hostname]",
		Action:    lc.list,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (lc *ListCmd) list(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.NArg() == 0 {
		cfg, err := core.ReadConfigFile(lc.coreFlags.ConfigFilePath)
		if err != nil {
			return err
		}

		p.List("Hosts", cfg.HostNames())
		return nil
	}

	r, err := newRunner(lc.coreFlags, c.Args().First())
	if err != nil {
		return err
	}

	return printHost(p, r)
}

func printHost(p *printer.Printer, r *runner.Runner) error {
	resolved, err := r.Tasks()
	if err != nil {
		return err
	}

	taskItems := make([]string, 0, len(resolved))
	for _, task := range resolved {
		if task.Name == "" {
			taskItems = append(taskItems, task.Exec)
			continue
		}
		taskItems = append(taskItems, fmt.Sprintf("%s: %s", task.Name, task.Exec))
	}

	defs, err := r.HostLinks()
	if err != nil {
		return err
	}

	linkItems := make([]string, 0, len(defs))
	for _, def := range defs {
		plan, err := r.Plan(def)
		if err != nil {
			return err
		}
		linkItems = append(linkItems, fmt.Sprintf("%s [%s] %s %s %s", def.Label(), plan.Kind, plan.From, styles.Arrow, plan.To))
	}

	p.Title(styles.Underline(r.Hostname()))
	p.LineBreak()
	p.List("Tasks", taskItems)
	p.LineBreak()
	p.List("Links", linkItems)

	return nil
}
