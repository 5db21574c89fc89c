// Package tasks models the task entries of a host and resolves them against
// the global task pool.
package tasks

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Kind tags the variant held by a Definition.
type Kind int

const (
	KindReference Kind = iota
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindLiteral:
		return "literal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Literal is a self-contained task.
//
// Revert is parsed from the configuration but is reserved: nothing runs it.
type Literal struct {
	Name   string `yaml:"name"   json:"name"`
	Exec   string `yaml:"exec"   json:"exec"`
	Revert string `yaml:"revert" json:"revert"`
}

// Definition is one entry in a host's task list: either a reference to a task
// in the global pool or an inline Literal.
type Definition struct {
	kind    Kind
	ref     string
	literal Literal
}

// Reference returns a Definition pointing at the global task called name.
func Reference(name string) Definition {
	return Definition{kind: KindReference, ref: name}
}

// Inline returns a Definition carrying lit.
func Inline(lit Literal) Definition {
	return Definition{kind: KindLiteral, literal: lit}
}

func (d Definition) Kind() Kind { return d.kind }

// Ref is the referenced task name. Only meaningful for KindReference.
func (d Definition) Ref() string { return d.ref }

// Literal is the inline task. Only meaningful for KindLiteral.
func (d Definition) Literal() Literal { return d.literal }

var errMissingExec = errors.New("task definition is missing 'exec'")

// UnmarshalYAML decodes a scalar into a Reference and a mapping into a Literal.
func (d *Definition) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*d = Reference(v)
		return nil
	case map[string]any:
		var lit Literal
		if err := unmarshal(&lit); err != nil {
			return err
		}
		if lit.Exec == "" {
			return errMissingExec
		}
		*d = Inline(lit)
		return nil
	default:
		return fmt.Errorf("task definition must be a task name or a mapping, got %T", raw)
	}
}

// UnmarshalJSON decodes a string into a Reference and an object into a Literal.
func (d *Definition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("empty task definition")
	}

	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*d = Reference(name)
		return nil
	case '{':
		var lit Literal
		if err := json.Unmarshal(trimmed, &lit); err != nil {
			return err
		}
		if lit.Exec == "" {
			return errMissingExec
		}
		*d = Inline(lit)
		return nil
	default:
		return fmt.Errorf("task definition must be a task name or an object, got %s", trimmed)
	}
}
