//go:build windows

package elevate

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// isElevated checks membership of the current process token in BUILTIN\Administrators. Under UAC a filtered
// token carries the group as deny-only, so this is false until the process is elevated.
func isElevated() (bool, error) {
	var adminSid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&adminSid)
	if err != nil {
		return false, err
	}
	defer windows.FreeSid(adminSid)

	token := windows.Token(0)
	return token.IsMember(adminSid)
}

func relaunch(executable string, args []string, mode windowMode) error {
	escaped := make([]string, len(args))
	for i, a := range args {
		escaped[i] = windows.EscapeArg(a)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	verbPtr, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return err
	}
	exePtr, err := windows.UTF16PtrFromString(executable)
	if err != nil {
		return err
	}
	argPtr, err := windows.UTF16PtrFromString(strings.Join(escaped, " "))
	if err != nil {
		return err
	}
	cwdPtr, err := windows.UTF16PtrFromString(cwd)
	if err != nil {
		return err
	}

	show := int32(windows.SW_SHOWNORMAL)
	if mode == windowHidden {
		show = windows.SW_HIDE
	}

	// ShellExecute fails with ERROR_CANCELLED when the user declines the UAC prompt.
	return windows.ShellExecute(0, verbPtr, exePtr, argPtr, cwdPtr, show)
}
