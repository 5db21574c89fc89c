//go:build !windows

package links

import (
	"fmt"
	"os"
)

// symlink creates a symbolic link. Unix symlinks do not distinguish between
// file and directory targets so the source is not inspected.
func symlink(from, to string) error {
	if err := os.Symlink(from, to); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	return nil
}
