// Package runner drives the install, link and exec operations for one host.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/hay-kot/ellipsis/internal/links"
	"github.com/hay-kot/ellipsis/internal/tasks"
	"github.com/hay-kot/ellipsis/internal/vars"
	"github.com/hay-kot/ellipsis/pkgs/styles"
	"github.com/rs/zerolog/log"
)

// Executor runs a fully resolved shell command.
type Executor interface {
	Run(ctx context.Context, command string) error
}

type Option func(*Runner)

// WithExecutor replaces the shell used to run tasks.
func WithExecutor(e Executor) Option {
	return func(r *Runner) { r.executor = e }
}

// WithLinker replaces the filesystem strategy used to apply links.
func WithLinker(l links.Linker) Option {
	return func(r *Runner) { r.linker = l }
}

// WithOutput sets where task headers are written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithTerminalWidth sets the width task headers are padded to.
func WithTerminalWidth(width int) Option {
	return func(r *Runner) { r.width = width }
}

// WithBaseDir roots relative link paths at dir instead of the working
// directory.
func WithBaseDir(dir string) Option {
	return func(r *Runner) { r.baseDir = dir }
}

// Runner executes the tasks and links of a single host. It never mutates the
// config it is given.
type Runner struct {
	hostname string
	cfg      *core.ConfigFile

	executor Executor
	linker   links.Linker
	out      io.Writer
	width    int
	baseDir  string

	vars    *vars.Resolver
	tasks   *tasks.Resolver
	planner *links.Planner
}

func New(hostname string, cfg *core.ConfigFile, opts ...Option) *Runner {
	r := &Runner{
		hostname: hostname,
		cfg:      cfg,
		executor: tasks.NewShell(),
		linker:   links.OSLinker{},
		out:      os.Stdout,
		width:    80,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.vars = vars.NewResolver(cfg.Vars)
	r.tasks = tasks.NewResolver(cfg)
	r.planner = links.NewPlanner(r.vars, links.NewPathResolver(r.baseDir), r.linker)

	return r
}

func (r *Runner) Hostname() string {
	return r.hostname
}

// Install runs every task of the host in order, then applies every link. All
// task references are resolved before the first task starts.
func (r *Runner) Install(ctx context.Context) error {
	resolved, err := r.tasks.ResolveAll(r.hostname)
	if err != nil {
		return err
	}

	host, err := r.cfg.Host(r.hostname)
	if err != nil {
		return err
	}

	log.Info().Str("host", r.hostname).Int("tasks", len(resolved)).Int("links", len(host.Links)).Msg("installing")

	for _, task := range resolved {
		if err := r.runTask(ctx, task); err != nil {
			return err
		}
	}

	return r.ApplyLinks(ctx, host.Links)
}

// Link applies the host's links. With no selectors every link is applied,
// otherwise only the links whose name is one of selectors.
func (r *Runner) Link(ctx context.Context, selectors []string) error {
	all, err := r.HostLinks()
	if err != nil {
		return err
	}

	if len(selectors) == 0 {
		return r.ApplyLinks(ctx, all)
	}

	selected, unmatched := links.SelectByName(all, selectors)
	for _, name := range unmatched {
		log.Warn().Str("host", r.hostname).Str("name", name).Msg("no link matches selector")
	}

	return r.ApplyLinks(ctx, selected)
}

// Exec runs a single task by name.
func (r *Runner) Exec(ctx context.Context, name string) error {
	task, err := r.tasks.ResolveOne(r.hostname, name)
	if err != nil {
		return err
	}

	return r.runTask(ctx, task)
}

// HostLinks returns the links declared for the host.
func (r *Runner) HostLinks() ([]links.Definition, error) {
	host, err := r.cfg.Host(r.hostname)
	if err != nil {
		return nil, err
	}
	return host.Links, nil
}

// Tasks returns the host's task list resolved against the global pool.
func (r *Runner) Tasks() ([]tasks.Literal, error) {
	return r.tasks.ResolveAll(r.hostname)
}

// Plan resolves a link without applying it.
func (r *Runner) Plan(def links.Definition) (links.Plan, error) {
	return r.planner.Plan(def)
}

// ApplyLinks applies defs in order and stops at the first failure.
func (r *Runner) ApplyLinks(ctx context.Context, defs []links.Definition) error {
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.planner.Apply(def); err != nil {
			return err
		}

		log.Info().Str("link", def.Label()).Str("kind", string(def.Kind.OrDefault())).Msg("linked")
	}

	return nil
}

func (r *Runner) runTask(ctx context.Context, task tasks.Literal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	command, err := r.vars.Resolve(task.Exec)
	if err != nil {
		return fmt.Errorf("task %s: %w", taskLabel(task), err)
	}

	_, _ = fmt.Fprintln(r.out, styles.Header("TASK", taskLabel(task), r.width))

	log.Debug().Str("task", taskLabel(task)).Str("command", command).Msg("executing task")

	return r.executor.Run(ctx, command)
}

func taskLabel(task tasks.Literal) string {
	if task.Name != "" {
		return task.Name
	}
	return task.Exec
}
