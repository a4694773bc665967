// Package elevate answers whether the current process runs with administrative rights and, if it does not,
// starts a new copy of the running executable with an elevation request.
package elevate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrNotSupported is returned when an elevated relaunch is attempted on a platform without a runas facility.
var ErrNotSupported = errors.New("elevated relaunch is only supported on Windows")

// Elevator queries and acquires administrative rights.
type Elevator interface {
	// IsElevated reports whether the current process is a member of the administrators group.
	IsElevated() (bool, error)
	// Relaunch starts the current executable with an elevation request and the given arguments. It does not wait
	// for the new process.
	Relaunch(args []string) error
}

var _ Elevator = System{}

// System is the Elevator for the host the process runs on.
type System struct{}

func (System) IsElevated() (bool, error) {
	return isElevated()
}

func (System) Relaunch(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return RelaunchError{err: fmt.Errorf("unable to resolve executable path: %w", err)}
	}
	mode := windowModeFor(args)
	hclog.L().Debug("relaunching with elevation", "executable", exe, "args", args, "window", mode)
	if err := relaunch(exe, args, mode); err != nil {
		return RelaunchError{executable: exe, err: err}
	}
	return nil
}

// windowMode is how the elevated copy's console is shown.
type windowMode string

const (
	windowNormal windowMode = "normal"
	windowHidden windowMode = "hidden"
)

// windowModeFor hides the elevated console only for silent runs. An interactive run prompts on that console.
func windowModeFor(args []string) windowMode {
	for _, a := range args {
		if strings.EqualFold(a, "/s") || strings.EqualFold(a, "/silent") {
			return windowHidden
		}
	}
	return windowNormal
}

var _ error = RelaunchError{}

type RelaunchError struct {
	executable string
	err        error
}

func (e RelaunchError) Error() string {
	return fmt.Sprintf("elevated relaunch failed, executable=%s, error=%s", e.executable, e.err.Error())
}

func (e RelaunchError) Unwrap() error {
	return e.err
}
