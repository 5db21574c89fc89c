package links

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Linker creates a link of the given kind from an already resolved source to
// an already resolved destination.
type Linker interface {
	Link(kind Kind, from, to string) error
}

// MetadataError is returned when the source of a link cannot be inspected.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to read metadata for %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

var _ Linker = OSLinker{}

// OSLinker applies links on the local filesystem. Symbolic link creation is
// platform specific, see symlink in linker_unix.go and linker_windows.go.
type OSLinker struct{}

func (OSLinker) Link(kind Kind, from, to string) error {
	switch kind.OrDefault() {
	case KindHard:
		if err := os.Link(from, to); err != nil {
			return fmt.Errorf("failed to create hard link: %w", err)
		}
		return nil
	case KindSoft:
		return symlink(from, to)
	case KindCopy:
		return copyFile(from, to)
	default:
		return fmt.Errorf("unsupported link kind %q", kind)
	}
}

// copyFile duplicates from into to. Data is written to a temporary file next
// to the destination and renamed into place, so a failed copy leaves nothing
// at the destination. An existing destination is never replaced.
func copyFile(from, to string) (err error) {
	info, err := os.Stat(from)
	if err != nil {
		return &MetadataError{Path: from, Err: err}
	}

	if info.IsDir() {
		return fmt.Errorf("cannot copy %s: source is a directory", from)
	}

	if _, err := os.Lstat(to); err == nil {
		return &fs.PathError{Op: "copy", Path: to, Err: fs.ErrExist}
	}

	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open copy source: %w", err)
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(to), "."+filepath.Base(to)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create copy destination: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", from, err)
	}

	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", to, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", to, err)
	}

	if err = os.Rename(tmp.Name(), to); err != nil {
		return fmt.Errorf("failed to move copy into place: %w", err)
	}

	return nil
}
