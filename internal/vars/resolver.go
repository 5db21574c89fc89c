// Package vars implements the {{name}} placeholder substitution used by task
// commands and link paths.
package vars

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{([^}]\w*)\}\}`)

// UndefinedVariableError is returned when a placeholder names a variable that
// is not present in the table.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// CircularReferenceError is returned when a variable's value refers back to
// itself, directly or through other variables. Name is the first variable seen
// twice in the chain being expanded.
type CircularReferenceError struct {
	Name string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular variable reference: %s", e.Name)
}

// Resolver substitutes placeholders from a flat variable table.
type Resolver struct {
	vars map[string]string
}

func NewResolver(vars map[string]string) *Resolver {
	if vars == nil {
		vars = map[string]string{}
	}

	return &Resolver{vars: vars}
}

// Resolve replaces every {{name}} in text with its value. Placeholders are
// substituted left to right and values that contain placeholders are expanded
// before they are inserted. Nothing is returned on failure.
func (r *Resolver) Resolve(text string) (string, error) {
	return r.expand(text, nil, map[string]string{})
}

// expand substitutes the placeholders of text. chain holds the variables
// currently being expanded; done caches fully expanded values for the call.
func (r *Resolver) expand(text string, chain []string, done map[string]string) (string, error) {
	var b strings.Builder
	rest := text

	for {
		loc := placeholder.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			return b.String(), nil
		}

		value, err := r.lookup(rest[loc[2]:loc[3]], chain, done)
		if err != nil {
			return "", err
		}

		b.WriteString(rest[:loc[0]])
		b.WriteString(value)
		rest = rest[loc[1]:]
	}
}

func (r *Resolver) lookup(name string, chain []string, done map[string]string) (string, error) {
	if value, ok := done[name]; ok {
		return value, nil
	}

	raw, ok := r.vars[name]
	if !ok {
		return "", &UndefinedVariableError{Name: name}
	}

	if slices.Contains(chain, name) {
		return "", &CircularReferenceError{Name: name}
	}

	value, err := r.expand(raw, append(chain, name), done)
	if err != nil {
		return "", err
	}

	done[name] = value
	return value, nil
}
