package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// Proc represents another running copy of the installer.
type Proc struct {
	Name string `json:"name"`
	PID  int    `json:"pid"`
	PPID int    `json:"ppid"`
}

// OtherInstances lists running processes that share this executable's name, other than this process and its
// parent. A relaunched elevated child has the original instance as its parent, so that pair is not reported.
func OtherInstances() ([]Proc, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	return matchInstances(filepath.Base(exe), os.Getpid(), os.Getppid(), processes), nil
}

func matchInstances(name string, self, parent int, processes []ps.Process) []Proc {
	var procs []Proc
	for _, p := range processes {
		if p.Pid() == self || p.Pid() == parent {
			continue
		}
		if !strings.EqualFold(p.Executable(), name) {
			continue
		}
		procs = append(procs, Proc{Name: p.Executable(), PID: p.Pid(), PPID: p.PPid()})
	}
	return procs
}
