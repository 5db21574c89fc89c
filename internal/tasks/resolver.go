package tasks

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// NoTaskFoundError is returned when a task name is found neither in the host's
// task list nor in the global pool.
type NoTaskFoundError struct {
	Name string
}

func (e *NoTaskFoundError) Error() string {
	return fmt.Sprintf("no task found: %s", e.Name)
}

// Source supplies host task lists and the global task pool.
type Source interface {
	// HostTasks returns the ordered task list declared for hostname.
	HostTasks(hostname string) ([]Definition, error)
	// GlobalTask looks up name in the global pool.
	GlobalTask(name string) (Literal, bool)
}

type Resolver struct {
	src Source
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// ResolveOne finds the task called name for hostname. An inline task on the
// host with that name overrides a global task of the same name.
func (r *Resolver) ResolveOne(hostname, name string) (Literal, error) {
	defs, err := r.src.HostTasks(hostname)
	if err != nil {
		return Literal{}, err
	}

	for _, def := range defs {
		if def.Kind() == KindLiteral && def.Literal().Name == name {
			log.Debug().Str("host", hostname).Str("task", name).Msg("resolved host task")
			return def.Literal(), nil
		}
	}

	if lit, ok := r.src.GlobalTask(name); ok {
		log.Debug().Str("host", hostname).Str("task", name).Msg("resolved global task")
		return lit, nil
	}

	return Literal{}, &NoTaskFoundError{Name: name}
}

// ResolveAll resolves the host's task list in declaration order. Every
// reference is checked before anything is returned so callers can run the
// list knowing no entry is dangling.
func (r *Resolver) ResolveAll(hostname string) ([]Literal, error) {
	defs, err := r.src.HostTasks(hostname)
	if err != nil {
		return nil, err
	}

	resolved := make([]Literal, 0, len(defs))

	for _, def := range defs {
		switch def.Kind() {
		case KindReference:
			lit, ok := r.src.GlobalTask(def.Ref())
			if !ok {
				return nil, &NoTaskFoundError{Name: def.Ref()}
			}
			resolved = append(resolved, lit)
		case KindLiteral:
			resolved = append(resolved, def.Literal())
		default:
			return nil, fmt.Errorf("unknown task definition kind: %s", def.Kind())
		}
	}

	log.Debug().Str("host", hostname).Int("count", len(resolved)).Msg("resolved host tasks")

	return resolved, nil
}
