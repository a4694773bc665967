package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/cosiner/argv"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/campusnet/eduroam-installer/assets"
	"github.com/campusnet/eduroam-installer/hcl"
	"github.com/campusnet/eduroam-installer/op"
	"github.com/campusnet/eduroam-installer/util"
)

const (
	CertificateID = "certificate"
	ProfileID     = "profile"

	// CertutilCommand adds the materialized certificate to the machine's trusted root store.
	CertutilCommand = `certutil -addstore Root "` + hcl.FilePlaceholder + `"`

	// NetshCommand registers the materialized WLAN profile for every user of the machine.
	NetshCommand = `netsh wlan add profile filename="` + hcl.FilePlaceholder + `" user=all`

	// waitDelay bounds how long we wait for a killed tool's output pipes to close.
	waitDelay = 2 * time.Second
)

type InstallerConfig struct {
	ID      string
	Asset   assets.Asset
	Command string
	Timeout time.Duration
	// TempDir is where the asset is materialized; empty means os.TempDir().
	TempDir string
}

var _ Runner = Installer{}

// Installer writes an asset to a temporary file, runs an external tool against it, waits for the tool to exit,
// and removes the file again.
type Installer struct {
	ctx context.Context

	Identifier string       `json:"id"`
	Asset      assets.Asset `json:"-"`
	Command    string       `json:"command"`
	Timeout    Timeout      `json:"timeout"`
	TempDir    string       `json:"temp_dir,omitempty"`
}

// NewInstaller provides a runner for an external installation tool.
func NewInstaller(cfg InstallerConfig) (*Installer, error) {
	return NewInstallerWithContext(context.Background(), cfg)
}

// NewInstallerWithContext provides a runner for an external installation tool which stops the tool when ctx is done.
func NewInstallerWithContext(ctx context.Context, cfg InstallerConfig) (*Installer, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.ID == "" {
		return nil, InstallerConfigError{config: cfg, err: errors.New("id must not be empty")}
	}
	if len(cfg.Asset.Data) == 0 {
		return nil, InstallerConfigError{config: cfg, err: errors.New("asset must not be empty")}
	}
	if !strings.Contains(cfg.Command, hcl.FilePlaceholder) {
		return nil, InstallerConfigError{config: cfg, err: fmt.Errorf("command must reference %s", hcl.FilePlaceholder)}
	}
	if cfg.Timeout < 0 {
		return nil, InstallerConfigError{config: cfg, err: fmt.Errorf("timeout must be a nonnegative, timeout='%s'", cfg.Timeout)}
	}

	return &Installer{
		ctx:        ctx,
		Identifier: cfg.ID,
		Asset:      cfg.Asset,
		Command:    cfg.Command,
		Timeout:    Timeout(cfg.Timeout),
		TempDir:    cfg.TempDir,
	}, nil
}

func (i Installer) ID() string {
	return i.Identifier
}

// Run executes the installation step. The returned op carries the tool's raw exit code; the temporary file is
// removed whatever the tool returns.
func (i Installer) Run() op.Op {
	startTime := time.Now()

	p, err := parseCommand(i.Command)
	if err != nil {
		return op.New(i.ID(), nil, 0, op.Unknown, err, Params(i), startTime, time.Now())
	}

	// Fail before touching the disk if the tool isn't installed
	if _, err := util.HostCommandExists(p.cmd); err != nil {
		return op.New(i.ID(), nil, 0, op.Unknown, LaunchError{command: i.Command, err: err}, Params(i), startTime, time.Now())
	}

	path, err := materialize(i.Asset, i.TempDir)
	if err != nil {
		return op.New(i.ID(), nil, 0, op.Unknown, err, Params(i), startTime, time.Now())
	}
	hclog.L().Debug("materialized asset", "runner", i.ID(), "path", path)

	o := i.exec(p, path, startTime)

	if rmErr := os.Remove(path); rmErr != nil {
		cleanupErr := CleanupError{path: path, err: rmErr}
		hclog.L().Error("unable to remove temporary file", "runner", i.ID(), "path", path, "error", rmErr)
		if o.Error != nil {
			o.Error = multierror.Append(o.Error, cleanupErr)
		} else {
			o.Error = cleanupErr
		}
		o.ErrString = o.Error.Error()
		o.Status = op.Unknown
	}

	return o
}

func (i Installer) exec(p parsedCommand, path string, startTime time.Time) op.Op {
	ctx := i.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if 0 < i.Timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(i.Timeout))
		defer cancel()
	}

	args := p.argsFor(path)
	cmd := exec.CommandContext(ctx, p.cmd, args...)
	cmd.WaitDelay = waitDelay
	configureCmd(cmd, p.commandLine(args))

	hclog.L().Debug("running tool", "runner", i.ID(), "command", p.cmd, "args", args)
	bts, err := cmd.CombinedOutput()
	result := strings.TrimSpace(string(bts))
	if result != "" {
		hclog.L().Debug("tool output", "runner", i.ID(), "output", result)
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		e := TimeoutError{command: i.Command, timeout: time.Duration(i.Timeout)}
		return op.New(i.ID(), result, exitCode, op.Timeout, e, Params(i), startTime, time.Now())
	case err == nil:
		return op.New(i.ID(), result, 0, op.Success, nil, Params(i), startTime, time.Now())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e := ToolExitError{command: i.Command, exitCode: exitErr.ExitCode()}
		return op.New(i.ID(), result, exitErr.ExitCode(), op.Fail, e, Params(i), startTime, time.Now())
	}
	return op.New(i.ID(), result, 0, op.Unknown, LaunchError{command: i.Command, err: err}, Params(i), startTime, time.Now())
}

// materialize writes the asset to a fresh temporary file and returns its path.
func materialize(a assets.Asset, dir string) (string, error) {
	f, err := os.CreateTemp(dir, a.Pattern())
	if err != nil {
		return "", MaterializeError{asset: a.Name, err: err}
	}
	path := f.Name()

	_, writeErr := f.Write(a.Data)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", MaterializeError{asset: a.Name, err: err}
	}
	return path, nil
}

type parsedCommand struct {
	cmd  string
	args []string
}

// argsFor substitutes the materialized file's path into the command's arguments.
func (p parsedCommand) argsFor(path string) []string {
	args := make([]string, len(p.args))
	for i, a := range p.args {
		args[i] = strings.ReplaceAll(a, hcl.FilePlaceholder, path)
	}
	return args
}

// commandLine re-joins the command without escaping. Windows tools such as netsh parse their own command line and
// expect quotes exactly where the configured command has them.
func (p parsedCommand) commandLine(args []string) string {
	return strings.Join(append([]string{p.cmd}, args...), " ")
}

func parseCommand(command string) (parsedCommand, error) {
	parsed := parsedCommand{}

	// On Windows the arguments are handed to the OS as one raw command line (see configureCmd), so the quotes in
	// the command must survive parsing. A simple split on whitespace keeps them; the placeholder is substituted
	// afterwards, so paths containing spaces remain a single quoted token.
	if runtime.GOOS == "windows" {
		split := strings.Fields(command)
		if len(split) == 0 {
			return parsed, CommandParseError{command: command, err: errors.New("empty command")}
		}
		parsed.cmd = split[0]
		parsed.args = split[1:]
		return parsed, nil
	}

	// Argv returns a [][]string, where each outer slice represents commands split by '|' and the inner slices
	// have the command at element 0 and any arguments to the command in the remaining elements.
	p, err := argv.Argv(command, nil, nil)
	if err != nil {
		return parsed, CommandParseError{command: command, err: err}
	}

	if len(p) != 1 || len(p[0]) == 0 {
		return parsed, CommandParseError{
			command: command,
			err:     fmt.Errorf("expected exactly one command without pipes, command=%s", command),
		}
	}

	parsed.cmd = p[0][0]
	parsed.args = p[0][1:]

	return parsed, nil
}

var _ error = InstallerConfigError{}

type InstallerConfigError struct {
	config InstallerConfig
	err    error
}

func (e InstallerConfigError) Error() string {
	return fmt.Sprintf("invalid installer configuration, id=%s, command=%s, error=%s", e.config.ID, e.config.Command, e.err.Error())
}

func (e InstallerConfigError) Unwrap() error {
	return e.err
}

var _ error = CommandParseError{}

type CommandParseError struct {
	command string
	err     error
}

func (e CommandParseError) Error() string {
	return fmt.Sprintf("error parsing command in Installer runner, command=%s, error=%s", e.command, e.err.Error())
}

func (e CommandParseError) Unwrap() error {
	return e.err
}

var _ error = MaterializeError{}

type MaterializeError struct {
	asset string
	err   error
}

func (e MaterializeError) Error() string {
	return fmt.Sprintf("unable to write temporary file, asset=%s, error=%s", e.asset, e.err.Error())
}

func (e MaterializeError) Unwrap() error {
	return e.err
}

var _ error = LaunchError{}

type LaunchError struct {
	command string
	err     error
}

func (e LaunchError) Error() string {
	return fmt.Sprintf("unable to launch tool, command=%s, error=%s", e.command, e.err.Error())
}

func (e LaunchError) Unwrap() error {
	return e.err
}

var _ error = ToolExitError{}

type ToolExitError struct {
	command  string
	exitCode int
}

func (e ToolExitError) Error() string {
	return fmt.Sprintf("tool exited with a non-zero code, command=%s, exit_code=%d", e.command, e.exitCode)
}

// ExitCode is the tool's raw exit code.
func (e ToolExitError) ExitCode() int {
	return e.exitCode
}

var _ error = TimeoutError{}

type TimeoutError struct {
	command string
	timeout time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("tool did not finish in time, command=%s, timeout=%s", e.command, e.timeout)
}

var _ error = CleanupError{}

type CleanupError struct {
	path string
	err  error
}

func (e CleanupError) Error() string {
	return fmt.Sprintf("unable to remove temporary file, path=%s, error=%s", e.path, e.err.Error())
}

func (e CleanupError) Unwrap() error {
	return e.err
}
