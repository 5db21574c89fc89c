package core

import (
	"errors"
	"fmt"
	"os"
)

// CurrentHost is the hostname argument that selects the machine's own name.
const CurrentHost = "."

// Hostname returns the host to operate on. arg is used verbatim unless it is
// CurrentHost, in which case the name reported by the operating system is
// returned.
func Hostname(arg string) (string, error) {
	switch arg {
	case "":
		return "", errors.New("hostname is required")
	case CurrentHost:
		name, err := os.Hostname()
		if err != nil {
			return "", fmt.Errorf("could not get hostname: %w", err)
		}
		return name, nil
	default:
		return arg, nil
	}
}
