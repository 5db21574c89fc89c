// Package links plans and applies the filesystem links declared for a host.
package links

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Kind selects how a link is materialized.
type Kind string

const (
	KindHard Kind = "hard"
	KindSoft Kind = "soft"
	KindCopy Kind = "copy"
)

// OrDefault returns KindSoft for an undeclared kind.
func (k Kind) OrDefault() Kind {
	if k == "" {
		return KindSoft
	}
	return k
}

func parseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "", KindHard, KindSoft, KindCopy:
		return k, nil
	default:
		return "", fmt.Errorf("invalid link kind %q (expected %q, %q or %q)", s, KindHard, KindSoft, KindCopy)
	}
}

func (k *Kind) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	parsed, err := parseKind(s)
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := parseKind(s)
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}

// Definition declares a single link. From and To may contain {{var}}
// placeholders; they are resolved when the link is applied.
type Definition struct {
	Name string `yaml:"name" json:"name"`
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to"   json:"to"`
	Kind Kind   `yaml:"kind" json:"kind"`
}

// Label is the name used when reporting on the link.
func (d Definition) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.To
}

// SelectByName returns the links whose name is one of selectors, in
// declaration order, along with the selectors that matched nothing. Links
// without a name are never selected.
func SelectByName(defs []Definition, selectors []string) ([]Definition, []string) {
	var (
		selected []Definition
		matched  = map[string]bool{}
	)

	for _, def := range defs {
		if def.Name == "" {
			continue
		}

		if slices.Contains(selectors, def.Name) {
			selected = append(selected, def)
			matched[def.Name] = true
		}
	}

	var unmatched []string
	for _, s := range selectors {
		if !matched[s] && !slices.Contains(unmatched, s) {
			unmatched = append(unmatched, s)
		}
	}

	return selected, unmatched
}
