// Package core holds the configuration model shared by every command.
package core

// EnvPrefix namespaces the environment variables read by the CLI.
const EnvPrefix = "ELLIPSIS_"

// Flags are the global CLI flags.
type Flags struct {
	LogLevel       string
	ConfigFilePath string
}
