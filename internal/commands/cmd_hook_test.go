package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_hookSection(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		want       string
	}{
		{
			name:       "discovered config",
			configPath: "",
			want:       "/usr/bin/ellipsis encrypt --check || exit 1",
		},
		{
			name:       "explicit config",
			configPath: "dots/ellipsis.yml",
			want:       `/usr/bin/ellipsis --config="dots/ellipsis.yml" encrypt --check || exit 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hookSection("/usr/bin/ellipsis", tt.configPath)
			if !strings.Contains(got, tt.want) {
				t.Errorf("hookSection() = %q, want it to contain %q", got, tt.want)
			}
			if !strings.Contains(got, hookMarker) {
				t.Errorf("hookSection() = %q, missing marker", got)
			}
		})
	}
}

func Test_addHookSection(t *testing.T) {
	section := hookSection("ellipsis", "")

	tests := []struct {
		name        string
		existing    string
		want        string
		wantChanged bool
	}{
		{
			name:        "new hook",
			existing:    "",
			want:        "#!/bin/sh\n" + section,
			wantChanged: true,
		},
		{
			name:        "append to existing hook",
			existing:    "#!/bin/sh\necho lint\n",
			want:        "#!/bin/sh\necho lint\n" + section,
			wantChanged: true,
		},
		{
			name:        "already installed",
			existing:    "#!/bin/sh\n" + section,
			want:        "#!/bin/sh\n" + section,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := addHookSection(tt.existing, section)
			if changed != tt.wantChanged {
				t.Errorf("addHookSection() changed = %v, want %v", changed, tt.wantChanged)
			}
			if got != tt.want {
				t.Errorf("addHookSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_removeHookSection(t *testing.T) {
	section := hookSection("ellipsis", "cfg.yml")

	tests := []struct {
		name      string
		content   string
		want      string
		wantFound bool
	}{
		{
			name:      "only our section",
			content:   "#!/bin/sh\n" + section,
			want:      "",
			wantFound: true,
		},
		{
			name:      "keeps other commands",
			content:   "#!/bin/sh\necho lint\n" + section,
			want:      "#!/bin/sh\necho lint\n",
			wantFound: true,
		},
		{
			name:      "section not present",
			content:   "#!/bin/sh\necho lint\n",
			want:      "#!/bin/sh\necho lint\n",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := removeHookSection(tt.content)
			if found != tt.wantFound {
				t.Errorf("removeHookSection() found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.want {
				t.Errorf("removeHookSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_findGitDir(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	nested := filepath.Join(root, "a", "b")

	if err := os.Mkdir(gitDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Chdir(nested)

	got, err := findGitDir()
	if err != nil {
		t.Fatalf("findGitDir() error = %v", err)
	}

	// TempDir may sit behind a symlink, compare resolved paths.
	want, _ := filepath.EvalSymlinks(gitDir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != want {
		t.Errorf("findGitDir() = %q, want %q", gotResolved, want)
	}
}
