//go:build windows

package links

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// symlink creates a symbolic link. The source is stat'ed first so a missing or
// unreadable source is reported as a MetadataError; os.Symlink picks the file
// or directory link type itself.
func symlink(from, to string) error {
	info, err := os.Stat(from)
	if err != nil {
		return &MetadataError{Path: from, Err: err}
	}

	log.Debug().Str("from", from).Bool("dir", info.IsDir()).Msg("creating windows symlink")

	if err := os.Symlink(from, to); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	return nil
}
