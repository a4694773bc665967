package hcl

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// FilePlaceholder is replaced with the path of the materialized asset in a tool command.
const FilePlaceholder = "{file}"

type HCL struct {
	Certificate *Tool     `hcl:"certificate,block" json:"certificate"`
	Profile     *Tool     `hcl:"profile,block" json:"profile"`
	Platform    *Platform `hcl:"platform,block" json:"platform"`
}

// Tool configures one installer step. Every attribute is optional; empty values keep the built-in defaults.
type Tool struct {
	// File replaces the embedded asset.
	File string `hcl:"file,optional" json:"file"`
	// Command replaces the default tool invocation and must reference FilePlaceholder.
	Command string `hcl:"command,optional" json:"command"`
	// Timeout bounds the tool's runtime; e.g. "2m". Empty means no timeout.
	Timeout string `hcl:"timeout,optional" json:"timeout"`
}

type Platform struct {
	MinMajorVersion int `hcl:"min_major_version,optional" json:"min_major_version"`
}

// Parse takes a file path and decodes the file from disk into HCL types.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, ConfigError{path: path, err: err}
	}
	if err := h.Validate(); err != nil {
		return HCL{}, ConfigError{path: path, err: err}
	}
	return h, nil
}

// Validate reports every problem in the configuration at once.
func (h HCL) Validate() error {
	var errs *multierror.Error

	errs = multierror.Append(errs, h.Certificate.validate("certificate")...)
	errs = multierror.Append(errs, h.Profile.validate("profile")...)

	if h.Platform != nil && h.Platform.MinMajorVersion < 0 {
		errs = multierror.Append(errs, fmt.Errorf("platform: min_major_version must not be negative, min_major_version=%d", h.Platform.MinMajorVersion))
	}

	return errs.ErrorOrNil()
}

func (t *Tool) validate(block string) []error {
	if t == nil {
		return nil
	}

	var errs []error
	if t.Command != "" && !strings.Contains(t.Command, FilePlaceholder) {
		errs = append(errs, fmt.Errorf("%s: command must reference %s, command=%s", block, FilePlaceholder, t.Command))
	}
	if _, err := t.TimeoutDuration(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", block, err))
	}
	return errs
}

// TimeoutDuration parses Timeout. A nil Tool or empty Timeout yields 0, meaning no timeout.
func (t *Tool) TimeoutDuration() (time.Duration, error) {
	if t == nil || t.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout, timeout=%s: %w", t.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, timeout=%s", t.Timeout)
	}
	return d, nil
}

var _ error = ConfigError{}

type ConfigError struct {
	path string
	err  error
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration, path=%s, error=%s", e.path, e.err.Error())
}

func (e ConfigError) Unwrap() error {
	return e.err
}
