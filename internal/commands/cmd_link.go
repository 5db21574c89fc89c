package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/internal/links"
	"github.com/hay-kot/ellipsis/pkgs/cll"
	"github.com/hay-kot/ellipsis/pkgs/printer"
	"github.com/hay-kot/ellipsis/pkgs/styles"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type LinkCmd struct {
	coreFlags *core.Flags
	flags     struct {
		Interactive bool
		Expr        string
	}
}

func NewLinkCmd(coreFlags *core.Flags) *LinkCmd {
	return &LinkCmd{coreFlags: coreFlags}
}

func (lc *LinkCmd) Register(app *cli.Command) *cli.Command {
	cmd := &cli.Command{
		Name:      "link",
		Usage:     "apply the links of a host",
		ArgsUsage: "<hostname> [names...]",
		Description: `Creates the links declared for a host without running any task. With no
names every link is applied; otherwise only links whose name is listed.

 Examples:
	 ellipsis link .                              # every link of this machine
	 ellipsis link work vim zsh                   # links named vim or zsh
	 ellipsis link work --interactive             # pick links from a list
	 ellipsis link work --expr 'kind == "copy"'   # links matching an expression

 Expression variables:
	 - name: link name (empty for unnamed links)
	 - kind: hard, soft or copy
	 - from: resolved source path
	 - to:   resolved destination path`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "select the links to apply from a list",
				Destination: &lc.flags.Interactive,
			},
			&cli.StringFlag{
				Name:        "expr",
				Aliases:     []string{"e"},
				Usage:       "apply only links matching the expression",
				Destination: &lc.flags.Expr,
			},
		},
		Action: lc.link,
	}

	app.Commands = append(app.Commands, cmd)
	return app
}

func (lc *LinkCmd) link(ctx context.Context, c *cli.Command) error {
	if err := cll.MinArgs(c, 1); err != nil {
		return err
	}

	selectors := c.Args().Tail()
	if (lc.flags.Interactive || lc.flags.Expr != "") && len(selectors) > 0 {
		return errors.New("link names cannot be combined with --interactive or --expr")
	}

	r, err := newRunner(lc.coreFlags, c.Args().First())
	if err != nil {
		return err
	}

	log.Debug().
		Bool("interactive", lc.flags.Interactive).
		Str("expr", lc.flags.Expr).
		Strs("names", selectors).
		Msg("link cmd")

	if !lc.flags.Interactive && lc.flags.Expr == "" {
		ctx, stop := interruptible(ctx)
		defer stop()

		return r.Link(ctx, selectors)
	}

	defs, err := r.HostLinks()
	if err != nil {
		return err
	}

	if lc.flags.Expr != "" {
		defs, err = filterLinks(lc.flags.Expr, defs, r.Plan)
		if err != nil {
			return err
		}
	}

	if lc.flags.Interactive {
		defs, err = selectLinks(defs, r.Plan)
		if err != nil {
			return err
		}
	}

	if len(defs) == 0 {
		printer.Ctx(ctx).Title("No links selected")
		return nil
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	return r.ApplyLinks(ctx, defs)
}

// selectLinks prompts for a subset of defs. The selection keeps declaration
// order.
func selectLinks(defs []links.Definition, plan planFunc) ([]links.Definition, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	options := make([]huh.Option[int], 0, len(defs))
	for i, def := range defs {
		p, err := plan(def)
		if err != nil {
			return nil, err
		}

		display := fmt.Sprintf("%s (%s) %s %s", def.Label(), p.Kind, styles.Arrow, p.To)
		options = append(options, huh.NewOption(display, i))
	}

	var selected []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select Links to Apply").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	chosen := make([]bool, len(defs))
	for _, i := range selected {
		chosen[i] = true
	}

	var out []links.Definition
	for i, def := range defs {
		if chosen[i] {
			out = append(out, def)
		}
	}

	return out, nil
}
