package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/campusnet/eduroam-installer/command"
	"github.com/campusnet/eduroam-installer/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configureLogging(version.Name)

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, os.Args[1:], ui, command.NewInstallCommand(ui))
}

// installer is the part of *command.InstallCommand that run depends on.
type installer interface {
	cli.Command
	Execute(ctx context.Context, opts command.InvocationOptions) int
}

// run resolves the invocation options and dispatches to version, help or install. Version wins over help, and
// both are answered before anything touches the system.
func run(ctx context.Context, args []string, ui cli.Ui, install installer) (rc int) {
	defer func() {
		if r := recover(); r != nil {
			ui.Error(fmt.Sprintf("unexpected failure: %v", r))
			rc = int(command.UnhandledException)
		}
	}()

	opts := command.ParseArgs(args)
	hclog.L().Debug("parsed arguments", "silent", opts.Silent, "help", opts.HelpRequested, "version", opts.VersionRequested, "config", opts.ConfigPath)

	switch {
	case opts.VersionRequested:
		return command.NewVersionCommand(ui).Run(nil)
	case opts.HelpRequested:
		return command.NewHelpCommand(ui, install).Run(nil)
	}
	return install.Execute(ctx, opts)
}

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger.
func configureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}
