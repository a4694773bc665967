//go:build !windows

package elevate

import "os"

func isElevated() (bool, error) {
	return os.Geteuid() == 0, nil
}

func relaunch(string, []string, windowMode) error {
	return ErrNotSupported
}
