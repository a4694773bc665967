//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

// configureCmd hides the tool's console window and passes the command line through verbatim. The child inherits
// this process's elevated token.
func configureCmd(cmd *exec.Cmd, commandLine string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow: true,
		CmdLine:    commandLine,
	}
}
