// Package cll provides utilities for building CLI applications with urfave/cli/v3.
package cll

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

// Registerable defines a type that can register itself with a CLI command,
// usually by appending a subcommand to the root.
type Registerable interface {
	Register(*cli.Command) *cli.Command
}

// Register chains multiple Registerable implementations onto a root command.
// Each Registerable is applied in order, allowing modular composition of CLI structure.
//
// Example:
//
//	root := &cli.Command{Name: "ellipsis"}
//	root = cll.Register(root, installCmd, linkCmd, execCmd)
func Register(root *cli.Command, subs ...Registerable) *cli.Command {
	for _, s := range subs {
		root = s.Register(root)
	}

	return root
}

// EnvWithPrefix returns a function that creates environment variable sources
// with a consistent prefix. This is useful for namespacing all environment
// variables for an application.
//
// Example:
//
//	env := cll.EnvWithPrefix("ELLIPSIS_")
//	flag := &cli.StringFlag{
//		Name:    "config",
//		Sources: env("CONFIG_PATH"), // reads ELLIPSIS_CONFIG_PATH
//	}
func EnvWithPrefix(prefix string) func(strs ...string) cli.ValueSourceChain {
	return func(strs ...string) cli.ValueSourceChain {
		withPrefix := make([]string, len(strs))

		for i, str := range strs {
			withPrefix[i] = prefix + str
		}

		return cli.EnvVars(withPrefix...)
	}
}

// ExactArgs returns a usage error unless cmd received exactly n positional
// arguments.
func ExactArgs(cmd *cli.Command, n int) error {
	if cmd.NArg() != n {
		return usageError(cmd, n)
	}
	return nil
}

// MinArgs returns a usage error when cmd received fewer than n positional
// arguments.
func MinArgs(cmd *cli.Command, n int) error {
	if cmd.NArg() < n {
		return usageError(cmd, n)
	}
	return nil
}

func usageError(cmd *cli.Command, n int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d\nusage: %s %s", cmd.Name, n, cmd.NArg(), cmd.Name, cmd.ArgsUsage)
}
