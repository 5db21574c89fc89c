package tasks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnknownHost = errors.New("unknown host")

type fakeSource struct {
	hosts  map[string][]Definition
	global map[string]Literal
}

func (f fakeSource) HostTasks(hostname string) ([]Definition, error) {
	defs, ok := f.hosts[hostname]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownHost, hostname)
	}
	return defs, nil
}

func (f fakeSource) GlobalTask(name string) (Literal, bool) {
	lit, ok := f.global[name]
	return lit, ok
}

func newFakeSource() fakeSource {
	return fakeSource{
		hosts: map[string][]Definition{
			"h": {
				Reference("brew"),
				Inline(Literal{Name: "t", Exec: "echo host"}),
				Inline(Literal{Exec: "echo anonymous"}),
				Reference("brew"),
			},
			"dangling": {
				Inline(Literal{Name: "ok", Exec: "echo ok"}),
				Reference("brew"),
				Reference("missing"),
			},
			"empty": {},
		},
		global: map[string]Literal{
			"t":    {Name: "t", Exec: "echo global"},
			"brew": {Name: "brew", Exec: "brew bundle"},
			"only": {Name: "only", Exec: "echo only"},
		},
	}
}

func TestResolver_ResolveOne(t *testing.T) {
	r := NewResolver(newFakeSource())

	tests := []struct {
		name     string
		host     string
		task     string
		wantExec string
	}{
		{name: "host literal overrides global", host: "h", task: "t", wantExec: "echo host"},
		{name: "falls back to global pool", host: "h", task: "only", wantExec: "echo only"},
		{name: "references do not count as host tasks", host: "h", task: "brew", wantExec: "brew bundle"},
		{name: "global pool from empty host", host: "empty", task: "t", wantExec: "echo global"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveOne(tt.host, tt.task)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExec, got.Exec)
		})
	}
}

func TestResolver_ResolveOne_Missing(t *testing.T) {
	r := NewResolver(newFakeSource())

	_, err := r.ResolveOne("h", "missing")

	var notFound *NoTaskFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestResolver_ResolveOne_UnknownHost(t *testing.T) {
	r := NewResolver(newFakeSource())

	_, err := r.ResolveOne("nobody", "t")
	assert.ErrorIs(t, err, errUnknownHost)
}

func TestResolver_ResolveAll(t *testing.T) {
	r := NewResolver(newFakeSource())

	got, err := r.ResolveAll("h")
	require.NoError(t, err)

	execs := make([]string, 0, len(got))
	for _, lit := range got {
		execs = append(execs, lit.Exec)
	}

	assert.Equal(t, []string{"brew bundle", "echo host", "echo anonymous", "brew bundle"}, execs)
}

func TestResolver_ResolveAll_FailsFast(t *testing.T) {
	r := NewResolver(newFakeSource())

	got, err := r.ResolveAll("dangling")
	assert.Nil(t, got)

	var notFound *NoTaskFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestResolver_ResolveAll_Empty(t *testing.T) {
	r := NewResolver(newFakeSource())

	got, err := r.ResolveAll("empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
