package command

import (
	"github.com/mitchellh/cli"

	"github.com/campusnet/eduroam-installer/version"
)

var _ cli.Command = &VersionCommand{}

type VersionCommand struct {
	ui cli.Ui
}

func NewVersionCommand(ui cli.Ui) *VersionCommand {
	return &VersionCommand{ui: ui}
}

func (c VersionCommand) Help() string {
	return "Usage: eduroam-installer /version"
}

func (c VersionCommand) Run([]string) int {
	c.ui.Output(version.GetVersion().Banner())

	return int(NoError)
}

func (c VersionCommand) Synopsis() string {
	return "Print the version of eduroam-installer"
}

var _ cli.Command = &HelpCommand{}

// HelpCommand prints the version banner followed by the install command's usage.
type HelpCommand struct {
	ui      cli.Ui
	install cli.Command
}

func NewHelpCommand(ui cli.Ui, install cli.Command) *HelpCommand {
	return &HelpCommand{ui: ui, install: install}
}

func (c HelpCommand) Help() string {
	return "Usage: eduroam-installer /?"
}

func (c HelpCommand) Run([]string) int {
	c.ui.Output(version.GetVersion().Banner())
	c.ui.Output("")
	c.ui.Output(c.install.Help())

	return int(NoError)
}

func (c HelpCommand) Synopsis() string {
	return "Print usage information"
}
