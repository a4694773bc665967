package command

import (
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"

	"github.com/campusnet/eduroam-installer/version"
)

func TestVersionCommand_Run(t *testing.T) {
	ui := cli.NewMockUi()

	rc := NewVersionCommand(ui).Run(nil)

	assert.Equal(t, int(NoError), rc)
	out := ui.OutputWriter.String()
	assert.True(t, strings.HasPrefix(out, version.Name+" v"))
	assert.Contains(t, out, version.GetVersion().Copyright)
}

func TestHelpCommand_Run(t *testing.T) {
	ui := cli.NewMockUi()
	install := &InstallCommand{}

	rc := NewHelpCommand(ui, install).Run(nil)

	assert.Equal(t, int(NoError), rc)
	out := ui.OutputWriter.String()
	assert.True(t, strings.HasPrefix(out, version.Name+" v"))
	assert.Contains(t, out, install.Help())
	assert.Empty(t, ui.ErrorWriter.String())
}
