package links

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// VarResolver substitutes {{var}} placeholders.
type VarResolver interface {
	Resolve(text string) (string, error)
}

// Plan is a link with its paths fully resolved.
type Plan struct {
	Name string
	From string
	To   string
	Kind Kind
}

// Planner resolves link declarations and hands them to a Linker.
type Planner struct {
	vars   VarResolver
	paths  PathResolver
	linker Linker
}

func NewPlanner(vars VarResolver, paths PathResolver, linker Linker) *Planner {
	return &Planner{
		vars:   vars,
		paths:  paths,
		linker: linker,
	}
}

// Plan resolves the variables and paths of def without touching the
// filesystem.
func (p *Planner) Plan(def Definition) (Plan, error) {
	from, err := p.resolvePath(def.From)
	if err != nil {
		return Plan{}, err
	}

	to, err := p.resolvePath(def.To)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		Name: def.Name,
		From: from,
		To:   to,
		Kind: def.Kind.OrDefault(),
	}, nil
}

// Apply plans def and creates the link.
func (p *Planner) Apply(def Definition) error {
	plan, err := p.Plan(def)
	if err != nil {
		return err
	}

	log.Debug().
		Str("name", plan.Name).
		Str("from", plan.From).
		Str("to", plan.To).
		Str("kind", string(plan.Kind)).
		Msg("applying link")

	if err := p.linker.Link(plan.Kind, plan.From, plan.To); err != nil {
		return fmt.Errorf("link %s: %w", def.Label(), err)
	}

	return nil
}

func (p *Planner) resolvePath(raw string) (string, error) {
	resolved, err := p.vars.Resolve(raw)
	if err != nil {
		return "", err
	}

	return p.paths.Resolve(resolved)
}
