package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostCommandExists(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	ok, err := HostCommandExists(exe)
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = HostCommandExists("definitely-not-a-real-command-4f2a")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home directory layout differs on windows")
	}
	home, err := homedir.Dir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	testCases := []struct {
		name   string
		path   string
		expect string
	}{
		{name: "Test Empty", path: "", expect: ""},
		{name: "Test Home", path: "~/eduroam.hcl", expect: filepath.Join(home, "eduroam.hcl")},
		{name: "Test Relative", path: "eduroam.hcl", expect: filepath.Join(wd, "eduroam.hcl")},
		{name: "Test Absolute", path: "/etc/eduroam.hcl", expect: "/etc/eduroam.hcl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandPath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}
