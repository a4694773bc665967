package util

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// HostCommandExists returns true if the named command can be found on the host's PATH (or is an existing path).
func HostCommandExists(command string) (bool, error) {
	if _, err := exec.LookPath(command); err != nil {
		return false, fmt.Errorf("%s: command not found: %w", command, err)
	}
	return true, nil
}

// ExpandPath expands a leading "~" to the user's home directory and makes the result absolute.
// An empty path stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("unable to expand path, path=%s: %w", path, err)
	}
	return filepath.Abs(expanded)
}
