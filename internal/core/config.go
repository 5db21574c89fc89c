package core

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/hay-kot/ellipsis/internal/links"
	"github.com/hay-kot/ellipsis/internal/tasks"
	"github.com/rs/zerolog/log"
)

// DiscoveryPattern is the substring looked for in file names when no config
// path is given.
const DiscoveryPattern = "ellipsis"

// ErrConfigNotFound is returned when discovery finds no config file.
var ErrConfigNotFound = errors.New("cannot find config file")

// UnsupportedFileTypeError is returned for config files with an extension
// other than .yml, .yaml or .json.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type `%s`", e.Ext)
}

// NoConfigFoundError is returned when the config declares nothing for a host.
type NoConfigFoundError struct {
	Hostname string
}

func (e *NoConfigFoundError) Error() string {
	return fmt.Sprintf("no config found for host: %s", e.Hostname)
}

type ConfigFile struct {
	Vars     map[string]string        `yaml:"vars"      json:"vars"`
	VarFiles []VarFile                `yaml:"var_files" json:"var_files"`
	Age      Age                      `yaml:"age"       json:"age"`
	Hosts    map[string]HostConfig    `yaml:"hosts"     json:"hosts"`
	Tasks    map[string]tasks.Literal `yaml:"tasks"     json:"tasks"`

	// ConfigDir is the absolute directory of the loaded file. Relative var
	// file and identity paths are rooted here.
	ConfigDir string `yaml:"-" json:"-"`
}

type HostConfig struct {
	Tasks []tasks.Definition `yaml:"tasks" json:"tasks"`
	Links []links.Definition `yaml:"links" json:"links"`
}

type Age struct {
	Recipients   []string `yaml:"recipients"    json:"recipients"`
	IdentityFile string   `yaml:"identity_file" json:"identity_file"`
}

type VarFile struct {
	Path    string `yaml:"path"  json:"path"`
	IsVault bool   `yaml:"vault" json:"vault"`
}

// LoadConfig reads the config file at cfgpath, or discovers one in the working
// directory when cfgpath is empty, and merges its var files into Vars.
func LoadConfig(cfgpath string) (ConfigFile, error) {
	cfg, err := ReadConfigFile(cfgpath)
	if err != nil {
		return cfg, err
	}

	if err := cfg.loadVarFiles(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ReadConfigFile decodes the config file without touching its var files.
func ReadConfigFile(cfgpath string) (ConfigFile, error) {
	cfg := ConfigFile{}

	if cfgpath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, err
		}

		cfgpath, err = FindConfigFile(cwd)
		if err != nil {
			return cfg, err
		}
	}

	absolutePath, err := filepath.Abs(cfgpath)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(absolutePath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(absolutePath, data, &cfg); err != nil {
		return cfg, err
	}

	cfg.ConfigDir = filepath.Dir(absolutePath)
	if cfg.Vars == nil {
		cfg.Vars = map[string]string{}
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	log.Debug().
		Str("path", absolutePath).
		Int("hosts", len(cfg.Hosts)).
		Int("tasks", len(cfg.Tasks)).
		Msg("loaded config")

	return cfg, nil
}

// FindConfigFile returns the first file in dir whose name contains
// DiscoveryPattern.
func FindConfigFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if strings.Contains(entry.Name(), DiscoveryPattern) {
			path := filepath.Join(dir, entry.Name())
			log.Debug().Str("path", path).Msg("discovered config file")
			return path, nil
		}
	}

	return "", ErrConfigNotFound
}

func decode(path string, data []byte, cfg *ConfigFile) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	switch ext {
	case "", "yml", "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return &UnsupportedFileTypeError{Ext: ext}
	}

	return nil
}

func (c ConfigFile) validate() error {
	for name, task := range c.Tasks {
		if task.Exec == "" {
			return fmt.Errorf("task %q is missing 'exec'", name)
		}
	}

	for hostname, host := range c.Hosts {
		for i, l := range host.Links {
			if l.From == "" || l.To == "" {
				return fmt.Errorf("host %q link %d requires both 'from' and 'to'", hostname, i)
			}
		}
	}

	return nil
}

// Host returns the configuration declared for hostname.
func (c ConfigFile) Host(hostname string) (HostConfig, error) {
	host, ok := c.Hosts[hostname]
	if !ok {
		return HostConfig{}, &NoConfigFoundError{Hostname: hostname}
	}
	return host, nil
}

// HostNames returns the declared hostnames in sorted order.
func (c ConfigFile) HostNames() []string {
	return slices.Sorted(maps.Keys(c.Hosts))
}

// HostTasks implements tasks.Source.
func (c ConfigFile) HostTasks(hostname string) ([]tasks.Definition, error) {
	host, err := c.Host(hostname)
	if err != nil {
		return nil, err
	}
	return host.Tasks, nil
}

// GlobalTask implements tasks.Source. Pool entries without a display name
// take their key.
func (c ConfigFile) GlobalTask(name string) (tasks.Literal, bool) {
	task, ok := c.Tasks[name]
	if !ok {
		return tasks.Literal{}, false
	}

	if task.Name == "" {
		task.Name = name
	}
	return task, true
}

// Paths resolves paths relative to the config directory.
func (c ConfigFile) Paths() links.PathResolver {
	return links.NewPathResolver(c.ConfigDir)
}

// EncryptedFiles returns the plain paths of every vault var file.
func (c ConfigFile) EncryptedFiles() ([]string, error) {
	files := []string{}

	for _, vf := range c.VarFiles {
		if !vf.IsVault {
			continue
		}

		path, err := c.Paths().Resolve(vf.Path)
		if err != nil {
			return nil, err
		}

		plain, _ := VaultPaths(path)
		files = append(files, plain)
	}

	return files, nil
}

// Vault returns a Vault for the config's age settings.
func (c ConfigFile) Vault() (*Vault, error) {
	identity := ""
	if c.Age.IdentityFile != "" {
		var err error
		identity, err = c.Paths().Resolve(c.Age.IdentityFile)
		if err != nil {
			return nil, err
		}
	}

	return NewVault(c.Age.Recipients, identity), nil
}

// loadVarFiles merges var files into Vars. Later files override earlier ones
// and inline vars override every file.
func (c *ConfigFile) loadVarFiles() error {
	if len(c.VarFiles) == 0 {
		return nil
	}

	merged := map[string]string{}

	for _, vf := range c.VarFiles {
		data, err := c.readVarFile(vf)
		if err != nil {
			return err
		}

		values := map[string]string{}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse var file %s: %w", vf.Path, err)
		}

		log.Debug().Str("path", vf.Path).Bool("vault", vf.IsVault).Int("vars", len(values)).Msg("loaded var file")

		maps.Copy(merged, values)
	}

	maps.Copy(merged, c.Vars)
	c.Vars = merged

	return nil
}

func (c ConfigFile) readVarFile(vf VarFile) ([]byte, error) {
	path, err := c.Paths().Resolve(vf.Path)
	if err != nil {
		return nil, err
	}

	if !vf.IsVault {
		return os.ReadFile(path)
	}

	plain, sealed := VaultPaths(path)

	// A decrypted copy on disk is being edited and takes precedence.
	if _, err := os.Stat(plain); err == nil {
		log.Debug().Str("path", plain).Msg("reading decrypted vault file")
		return os.ReadFile(plain)
	}

	vault, err := c.Vault()
	if err != nil {
		return nil, err
	}

	return vault.ReadFile(sealed)
}
