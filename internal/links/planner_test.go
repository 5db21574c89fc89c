//go:build !windows

package links

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hay-kot/ellipsis/internal/vars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linkCall struct {
	Kind Kind
	From string
	To   string
}

type recordingLinker struct {
	calls []linkCall
	err   error
}

func (r *recordingLinker) Link(kind Kind, from, to string) error {
	r.calls = append(r.calls, linkCall{Kind: kind, From: from, To: to})
	return r.err
}

func newTestPlanner(linker Linker) *Planner {
	resolver := vars.NewResolver(map[string]string{
		"root": "/tmp/app",
		"home": "/home/me",
	})

	return NewPlanner(resolver, NewPathResolver("/work"), linker)
}

func TestPlanner_Apply(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want linkCall
	}{
		{
			name: "default kind is soft",
			def:  Definition{From: "{{root}}/a", To: "./a"},
			want: linkCall{Kind: KindSoft, From: "/tmp/app/a", To: filepath.Join("/work", "a")},
		},
		{
			name: "explicit soft",
			def:  Definition{From: "{{root}}/a", To: "./a", Kind: KindSoft},
			want: linkCall{Kind: KindSoft, From: "/tmp/app/a", To: filepath.Join("/work", "a")},
		},
		{
			name: "hard",
			def:  Definition{From: "{{root}}/b", To: "{{home}}/b", Kind: KindHard},
			want: linkCall{Kind: KindHard, From: "/tmp/app/b", To: "/home/me/b"},
		},
		{
			name: "copy",
			def:  Definition{From: "conf/c", To: "{{home}}/c", Kind: KindCopy},
			want: linkCall{Kind: KindCopy, From: filepath.Join("/work", "conf/c"), To: "/home/me/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linker := &recordingLinker{}

			require.NoError(t, newTestPlanner(linker).Apply(tt.def))
			assert.Equal(t, []linkCall{tt.want}, linker.calls)
		})
	}
}

func TestPlanner_Apply_UndefinedVariable(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "in from", def: Definition{From: "{{nope}}/a", To: "./a"}},
		{name: "in to", def: Definition{From: "{{root}}/a", To: "{{nope}}/a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linker := &recordingLinker{}

			err := newTestPlanner(linker).Apply(tt.def)

			var undef *vars.UndefinedVariableError
			require.ErrorAs(t, err, &undef)
			assert.Equal(t, "nope", undef.Name)
			assert.Empty(t, linker.calls, "linker must not be called")
		})
	}
}

func TestPlanner_Apply_LinkerError(t *testing.T) {
	boom := errors.New("boom")
	linker := &recordingLinker{err: boom}

	err := newTestPlanner(linker).Apply(Definition{Name: "vim", From: "/a", To: "/b"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "link vim")
}

func TestPlanner_Plan(t *testing.T) {
	linker := &recordingLinker{}

	plan, err := newTestPlanner(linker).Plan(Definition{Name: "x", From: "{{root}}", To: "/dst", Kind: KindCopy})
	require.NoError(t, err)

	assert.Equal(t, Plan{Name: "x", From: "/tmp/app", To: "/dst", Kind: KindCopy}, plan)
	assert.Empty(t, linker.calls)
}
