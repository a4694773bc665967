package command

import "strings"

// ExitCode is the process exit status of an install run. Each failure owns one bit, so a script can tell which
// parts of the installation failed with a bit test; NoError means no bit is set.
type ExitCode int

// NoError indicates a successful run, or a run the user chose not to continue.
const NoError ExitCode = 0

const (
	// CertInstallError indicates the trust-store tool exited non-zero.
	CertInstallError ExitCode = 1 << iota

	// ProfileInstallError indicates the WLAN tool exited non-zero.
	ProfileInstallError

	// SystemNotSupported indicates the user declined to continue on an unsupported operating system.
	SystemNotSupported

	// NoAdmin indicates administrator rights were not available and the elevated relaunch failed.
	NoAdmin

	// UnhandledException indicates an unexpected error, such as a configuration, file system, or launch failure.
	UnhandledException
)

var exitCodeNames = []struct {
	code ExitCode
	name string
}{
	{CertInstallError, "CertInstallError"},
	{ProfileInstallError, "ProfileInstallError"},
	{SystemNotSupported, "SystemNotSupported"},
	{NoAdmin, "NoAdmin"},
	{UnhandledException, "UnhandledException"},
}

// Has reports whether every bit of flag is set in c.
func (c ExitCode) Has(flag ExitCode) bool {
	return flag != NoError && c&flag == flag
}

func (c ExitCode) String() string {
	if c == NoError {
		return "NoError"
	}
	var names []string
	for _, n := range exitCodeNames {
		if c.Has(n.code) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
