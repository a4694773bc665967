// Package platform decides whether the host is a system the installer supports.
package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v3/host"
)

// DefaultMinMajorVersion is the oldest Windows major version the profile and certificate tooling is known to work on.
const DefaultMinMajorVersion = 10

// Info is the subset of host information used to decide support.
type Info struct {
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	KernelVersion   string `json:"kernelVersion"`
}

// Result describes the outcome of a support check.
type Result struct {
	Info         Info
	MajorVersion int
	Supported    bool
	Reason       string
}

// Checker determines platform support.
type Checker interface {
	Check(ctx context.Context) (Result, error)
}

var _ Checker = Host{}

// Host checks the machine the process is running on.
type Host struct {
	MinMajorVersion int
}

// NewHost returns a Host checker; a minMajor of 0 selects DefaultMinMajorVersion.
func NewHost(minMajor int) Host {
	if minMajor == 0 {
		minMajor = DefaultMinMajorVersion
	}
	return Host{MinMajorVersion: minMajor}
}

func (h Host) Check(ctx context.Context) (Result, error) {
	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		hclog.L().Trace("platform.Host.Check()", "error", err)
		return Result{}, fmt.Errorf("unable to read host information: %w", err)
	}

	info := Info{
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
	}
	return Evaluate(info, h.MinMajorVersion), nil
}

// Evaluate applies the support rules to already-collected host information.
func Evaluate(info Info, minMajor int) Result {
	r := Result{Info: info}

	if info.OS != "windows" {
		r.Reason = fmt.Sprintf("unsupported operating system %q", info.OS)
		return r
	}

	// PlatformVersion looks like "10.0.22631 Build 22631"; fall back to the kernel version if it is missing.
	version := info.PlatformVersion
	if version == "" {
		version = info.KernelVersion
	}
	major, err := MajorVersion(version)
	if err != nil {
		r.Reason = err.Error()
		return r
	}
	r.MajorVersion = major

	if major < minMajor {
		r.Reason = fmt.Sprintf("windows major version %d is older than %d", major, minMajor)
		return r
	}

	r.Supported = true
	return r
}

// MajorVersion extracts the leading integer of a dotted version string.
func MajorVersion(version string) (int, error) {
	v := strings.TrimSpace(version)
	if i := strings.IndexAny(v, ". "); i >= 0 {
		v = v[:i]
	}
	major, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("unable to parse version %q", version)
	}
	return major, nil
}
