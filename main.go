package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/ellipsis/internal/commands"
	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/pkgs/cll"
	"github.com/hay-kot/ellipsis/pkgs/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "v0.1.0-develop"
	commit  = "HEAD"
	date    = time.Now().Format(time.DateTime)
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	flags := &core.Flags{}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		ctx    = context.Background()
		writer = printer.NewDeferedWriter(os.Stdout)
	)

	ctx = printer.WithWriter(ctx, writer)
	printer.ConsolePrinter = printer.Ctx(ctx)

	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "ellipsis",
		Usage:                 `Host-aware dotfiles installer: run a host's tasks and link its files.`,
		Version:               build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "set the logging verbosity level",
				Value:       "info",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the ellipsis configuration file (default: first file in the working directory named like 'ellipsis')",
				Required:    false,
				Sources:     envvars("CONFIG_PATH"),
				Destination: &flags.ConfigFilePath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("config", flags.ConfigFilePath).
				Msg("global flags")

			return ctx, nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return err
		},
	}

	app = cll.Register(app,
		commands.NewInstallCmd(flags),
		commands.NewLinkCmd(flags),
		commands.NewExecCmd(flags),
		commands.NewListCmd(flags),
		commands.NewEncryptCmd(flags),
		commands.NewHookCmd(flags),
	)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.New(os.Stderr).FatalError(err)
		exitCode = 1
	}

	err := writer.Flush()
	if err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}
