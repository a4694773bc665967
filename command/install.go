package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/campusnet/eduroam-installer/assets"
	"github.com/campusnet/eduroam-installer/elevate"
	"github.com/campusnet/eduroam-installer/hcl"
	"github.com/campusnet/eduroam-installer/op"
	"github.com/campusnet/eduroam-installer/platform"
	"github.com/campusnet/eduroam-installer/runner"
	"github.com/campusnet/eduroam-installer/util"
)

var _ cli.Command = &InstallCommand{}

// step is one installer run and the exit-code bit it owns.
type step struct {
	runner runner.Runner
	flag   ExitCode
	label  string
}

type InstallCommand struct {
	ui cli.Ui

	elevator       elevate.Elevator
	newChecker     func(minMajor int) platform.Checker
	newSteps       func(ctx context.Context, cfg hcl.HCL) ([]step, error)
	otherInstances func() ([]platform.Proc, error)
}

// NewInstallCommand produces a new *InstallCommand wired to the host system.
func NewInstallCommand(ui cli.Ui) *InstallCommand {
	return &InstallCommand{
		ui:       ui,
		elevator: elevate.System{},
		newChecker: func(minMajor int) platform.Checker {
			return platform.NewHost(minMajor)
		},
		newSteps:       buildSteps,
		otherInstances: platform.OtherInstances,
	}
}

// Help provides help text to users who pass in /? or --help.
func (c *InstallCommand) Help() string {
	helpText := `Usage: eduroam-installer [options]

Installs the eduroam root certificate into the machine's trusted root store and registers the eduroam
wireless profile for all users. If the installer is not running as administrator it restarts itself
with an elevation request.

The exit status is a sum of: 1 certificate installation failed, 2 profile installation failed,
4 system not supported, 8 administrator rights not granted, 16 unexpected error.
`
	var o InvocationOptions
	return Usage(helpText, newFlagSet(&o))
}

// Synopsis provides a brief description of the command.
func (c *InstallCommand) Synopsis() string {
	return "Install the eduroam certificate and wireless profile"
}

// Run parses args and executes the installation.
func (c *InstallCommand) Run(args []string) int {
	return c.Execute(context.Background(), ParseArgs(args))
}

// Execute runs the installation for already-parsed options and returns the process exit status. Any error or
// panic that escapes the installation is reported and turned into UnhandledException.
func (c *InstallCommand) Execute(ctx context.Context, opts InvocationOptions) (rc int) {
	defer func() {
		if r := recover(); r != nil {
			c.reportUnhandled(fmt.Errorf("unexpected failure: %v", r))
			rc = int(UnhandledException)
		}
	}()

	code, err := c.install(ctx, opts)
	if err != nil {
		c.reportUnhandled(err)
		return int(UnhandledException)
	}
	hclog.L().Debug("installation finished", "exit_code", int(code), "result", code.String())
	return int(code)
}

func (c *InstallCommand) install(ctx context.Context, opts InvocationOptions) (ExitCode, error) {
	l := hclog.L()

	configPath, cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return NoError, err
	}

	elevated, err := c.elevator.IsElevated()
	if err != nil {
		return NoError, fmt.Errorf("unable to determine administrator rights: %w", err)
	}
	if !elevated {
		args := opts.RelaunchArgs(configPath)
		if err := c.elevator.Relaunch(args); err != nil {
			l.Warn("elevated relaunch failed", "error", err)
			if !opts.Silent {
				c.ui.Error(fmt.Sprintf("Administrator rights are required to install the eduroam profile.\n%s", err))
			}
			return NoAdmin, nil
		}
		l.Info("relaunched with elevation", "args", args)
		return NoError, nil
	}

	c.warnOtherInstances()

	if !opts.Silent {
		minMajor := 0
		if cfg.Platform != nil {
			minMajor = cfg.Platform.MinMajorVersion
		}
		res, err := c.newChecker(minMajor).Check(ctx)
		if err != nil {
			return NoError, err
		}
		if !res.Supported {
			l.Warn("unsupported platform", "reason", res.Reason, "os", res.Info.OS, "version", res.Info.PlatformVersion)
			ok, err := c.confirm(fmt.Sprintf("This system is not supported (%s). Continue anyway? [y/N] ", res.Reason))
			if err != nil {
				return NoError, err
			}
			if !ok {
				return SystemNotSupported, nil
			}
		}

		ok, err := c.confirm("Install the eduroam certificate and wireless profile? [y/N] ")
		if err != nil {
			return NoError, err
		}
		if !ok {
			l.Info("installation declined")
			return NoError, nil
		}
	}

	steps, err := c.newSteps(ctx, cfg)
	if err != nil {
		return NoError, err
	}

	code := NoError
	var ops []op.Op
	for _, s := range steps {
		o := s.runner.Run()
		ops = append(ops, o)
		logResult(l, s.runner.ID(), o)

		switch o.Status {
		case op.Success:
		case op.Fail, op.Timeout:
			code |= s.flag
			l.Warn("step failed", "step", s.runner.ID(), "exit_code", o.ExitCode, "error", o.Error)
			if !opts.Silent {
				c.ui.Error(fmt.Sprintf("The %s could not be installed (exit code %d).", s.label, o.ExitCode))
			}
		default:
			return code, o.Error
		}
	}

	if !opts.Silent {
		summary := new(bytes.Buffer)
		if err := writeSummary(summary, ops); err != nil {
			l.Warn("failed to write summary", "error", err)
		} else {
			c.ui.Output(strings.TrimRight(summary.String(), "\n"))
		}
		if code == NoError {
			c.ui.Info("eduroam has been configured successfully.")
		}
	}
	return code, nil
}

// logResult writes the op, including its runner's params, as JSON at debug level.
func logResult(l hclog.Logger, id string, o op.Op) {
	if !l.IsDebug() {
		return
	}
	bts, err := json.Marshal(o)
	if err != nil {
		l.Debug("step finished", "step", id, "status", o.Status, "marshal_error", err)
		return
	}
	l.Debug("step finished", "step", id, "result", string(bts))
}

// confirm asks a yes/no question. A closed input counts as no.
func (c *InstallCommand) confirm(query string) (bool, error) {
	answer, err := c.ui.Ask(query)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *InstallCommand) reportUnhandled(err error) {
	hclog.L().Debug("unhandled error", "error", err)
	c.ui.Error(err.Error())
}

func (c *InstallCommand) warnOtherInstances() {
	if c.otherInstances == nil {
		return
	}
	procs, err := c.otherInstances()
	if err != nil {
		hclog.L().Debug("unable to list processes", "error", err)
		return
	}
	for _, p := range procs {
		hclog.L().Warn("another installer instance is running", "name", p.Name, "pid", p.PID)
	}
}

// loadConfig resolves the configuration path from the flag or the environment and parses it. It returns the
// absolute path so that it can be forwarded to an elevated relaunch.
func loadConfig(flagPath string) (string, hcl.HCL, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return "", hcl.HCL{}, nil
	}

	abs, err := util.ExpandPath(path)
	if err != nil {
		return "", hcl.HCL{}, err
	}
	cfg, err := hcl.Parse(abs)
	if err != nil {
		return "", hcl.HCL{}, err
	}
	hclog.L().Debug("loaded configuration", "path", abs)
	return abs, cfg, nil
}

// buildSteps maps the configuration onto the certificate and profile installers, in that order.
func buildSteps(ctx context.Context, cfg hcl.HCL) ([]step, error) {
	cert, err := newInstaller(ctx, runner.CertificateID, cfg.Certificate, assets.Certificate(), assets.LoadCertificate, runner.CertutilCommand)
	if err != nil {
		return nil, err
	}
	profile, err := newInstaller(ctx, runner.ProfileID, cfg.Profile, assets.Profile(), assets.LoadProfile, runner.NetshCommand)
	if err != nil {
		return nil, err
	}
	return []step{
		{runner: cert, flag: CertInstallError, label: "root certificate"},
		{runner: profile, flag: ProfileInstallError, label: "wireless profile"},
	}, nil
}

func newInstaller(ctx context.Context, id string, tool *hcl.Tool, embedded assets.Asset, load func(string) (assets.Asset, error), defaultCommand string) (*runner.Installer, error) {
	cfg := runner.InstallerConfig{
		ID:      id,
		Asset:   embedded,
		Command: defaultCommand,
	}

	if tool != nil {
		if tool.File != "" {
			path, err := util.ExpandPath(tool.File)
			if err != nil {
				return nil, err
			}
			a, err := load(path)
			if err != nil {
				return nil, err
			}
			cfg.Asset = a
		}
		if tool.Command != "" {
			cfg.Command = tool.Command
		}
		timeout, err := tool.TimeoutDuration()
		if err != nil {
			return nil, err
		}
		cfg.Timeout = timeout
	}

	return runner.NewInstallerWithContext(ctx, cfg)
}
