package links

import (
	"os"
	"path/filepath"
	"strings"
)

// PathResolver turns link paths into absolute paths. A leading '~' expands to
// the user's home directory and relative paths are rooted at baseDir, or at
// the working directory when baseDir is empty.
type PathResolver struct {
	baseDir string
}

func NewPathResolver(baseDir string) PathResolver {
	return PathResolver{baseDir: baseDir}
}

func (pr PathResolver) Resolve(ip string) (string, error) {
	if ip == "~" || strings.HasPrefix(ip, "~/") || strings.HasPrefix(ip, `~\`) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		ip = filepath.Join(homeDir, ip[1:])
	}

	if filepath.IsAbs(ip) {
		return filepath.Clean(ip), nil
	}

	if pr.baseDir != "" {
		return filepath.Join(pr.baseDir, ip), nil
	}

	return filepath.Abs(ip)
}
