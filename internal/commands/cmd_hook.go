package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/ellipsis/internal/core"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

const (
	hookMarker  = "ellipsis pre-commit hook"
	hookCommand = "encrypt --check"
	hookShebang = "#!/bin/sh"
)

type HookCmd struct {
	coreFlags *core.Flags
}

func NewHookCmd(coreFlags *core.Flags) *HookCmd {
	return &HookCmd{coreFlags: coreFlags}
}

func (hc *HookCmd) Register(app *cli.Command) *cli.Command {
	cmds := []*cli.Command{
		{
			Name:  "hook",
			Usage: "manage git hooks for ellipsis",
			Commands: []*cli.Command{
				{
					Name:  "install",
					Usage: "install git pre-commit hook to check for unencrypted vault files",
					Description: `Installs a pre-commit hook that prevents commits containing unencrypted vault files.

The hook will call 'ellipsis encrypt --check' before each commit.

If a pre-commit hook already exists, the ellipsis check will be appended to it.`,
					Action: hc.install,
				},
				{
					Name:  "uninstall",
					Usage: "remove the ellipsis pre-commit hook",
					Description: `Removes the ellipsis section from .git/hooks/pre-commit. The hook file is
deleted when nothing else is left in it.`,
					Action: hc.uninstall,
				},
			},
		},
	}

	app.Commands = append(app.Commands, cmds...)
	return app
}

func (hc *HookCmd) install(ctx context.Context, cmd *cli.Command) error {
	gitDir, err := findGitDir()
	if err != nil {
		return fmt.Errorf("failed to find .git directory: %w", err)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	hookPath := filepath.Join(hooksDir, "pre-commit")

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}

	bin, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get ellipsis executable path: %w", err)
	}

	// Prefer a config path relative to the repository root, hooks run there.
	configPath := hc.coreFlags.ConfigFilePath
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			if rel, err := filepath.Rel(filepath.Dir(gitDir), abs); err == nil && !strings.HasPrefix(rel, "..") {
				configPath = rel
			}
		}
	}

	existing, err := os.ReadFile(hookPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read pre-commit hook: %w", err)
	}

	content, changed := addHookSection(string(existing), hookSection(bin, configPath))
	if !changed {
		log.Info().Str("path", hookPath).Msg("ellipsis pre-commit hook already installed")
		return nil
	}

	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return fmt.Errorf("failed to write pre-commit hook: %w", err)
	}

	log.Info().Str("path", hookPath).Msg("Installed pre-commit hook successfully")
	return nil
}

func (hc *HookCmd) uninstall(ctx context.Context, cmd *cli.Command) error {
	gitDir, err := findGitDir()
	if err != nil {
		return fmt.Errorf("failed to find .git directory: %w", err)
	}

	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")

	content, err := os.ReadFile(hookPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Msg("No pre-commit hook found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read pre-commit hook: %w", err)
	}

	remaining, found := removeHookSection(string(content))
	if !found {
		log.Info().Msg("ellipsis hook not found in pre-commit")
		return nil
	}

	if remaining == "" {
		if err := os.Remove(hookPath); err != nil {
			return fmt.Errorf("failed to remove pre-commit hook: %w", err)
		}
		log.Info().Str("path", hookPath).Msg("Removed empty pre-commit hook")
		return nil
	}

	if err := os.WriteFile(hookPath, []byte(remaining), 0o755); err != nil {
		return fmt.Errorf("failed to write pre-commit hook: %w", err)
	}

	log.Info().Str("path", hookPath).Msg("Removed ellipsis section from pre-commit hook")
	return nil
}

// hookSection renders the lines appended to the pre-commit hook.
func hookSection(bin, configPath string) string {
	command := bin
	if configPath != "" {
		command += fmt.Sprintf(" --config=%q", configPath)
	}

	return fmt.Sprintf("\n# %s - check vault files are encrypted\n%s %s || exit 1\n", hookMarker, command, hookCommand)
}

// addHookSection appends section to an existing hook, or creates a new hook
// when existing is empty. It reports false when the section is already
// present.
func addHookSection(existing, section string) (string, bool) {
	if strings.Contains(existing, hookMarker) {
		return existing, false
	}

	if strings.TrimSpace(existing) == "" {
		return hookShebang + "\n" + section, true
	}

	return strings.TrimRight(existing, "\n") + "\n" + section, true
}

// removeHookSection strips the ellipsis section from a hook. It returns an
// empty string when nothing but the shebang remains, and false when the
// section was not found.
func removeHookSection(content string) (string, bool) {
	if !strings.Contains(content, hookMarker) {
		return content, false
	}

	var kept []string
	inSection := false

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.Contains(line, hookMarker):
			inSection = true
		case inSection && strings.Contains(line, hookCommand):
			inSection = false
		case inSection && strings.TrimSpace(line) == "":
		default:
			kept = append(kept, line)
		}
	}

	out := strings.TrimRight(strings.Join(kept, "\n"), "\n")
	if strings.TrimSpace(out) == "" || strings.TrimSpace(out) == hookShebang {
		return "", true
	}

	return out + "\n", true
}

// findGitDir finds the .git directory by walking up from current directory
func findGitDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return gitDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("not in a git repository")
		}
		dir = parent
	}
}
