package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		expect InvocationOptions
	}{
		{name: "no arguments", args: nil, expect: InvocationOptions{}},
		{name: "slash s", args: []string{"/s"}, expect: InvocationOptions{Silent: true}},
		{name: "slash silent", args: []string{"/silent"}, expect: InvocationOptions{Silent: true}},
		{name: "dash s", args: []string{"-s"}, expect: InvocationOptions{Silent: true}},
		{name: "slash question mark", args: []string{"/?"}, expect: InvocationOptions{HelpRequested: true}},
		{name: "double dash help", args: []string{"--help"}, expect: InvocationOptions{HelpRequested: true}},
		{name: "dash h", args: []string{"-h"}, expect: InvocationOptions{HelpRequested: true}},
		{name: "slash version", args: []string{"/version"}, expect: InvocationOptions{VersionRequested: true}},
		{name: "slash v", args: []string{"/v"}, expect: InvocationOptions{VersionRequested: true}},
		{
			name:   "version and help",
			args:   []string{"/?", "/v"},
			expect: InvocationOptions{HelpRequested: true, VersionRequested: true},
		},
		{
			name:   "unknown flags are ignored",
			args:   []string{"/quiet", "--force", "/s"},
			expect: InvocationOptions{Silent: true},
		},
		{
			name:   "positional arguments are ignored",
			args:   []string{"install", "/s", "now"},
			expect: InvocationOptions{Silent: true},
		},
		{
			name:   "bare separators are ignored",
			args:   []string{"/", "--", "-", "/s"},
			expect: InvocationOptions{Silent: true},
		},
		{
			name:   "explicit boolean value",
			args:   []string{"/silent=false"},
			expect: InvocationOptions{},
		},
		{
			name:   "invalid boolean value is ignored",
			args:   []string{"/silent=maybe"},
			expect: InvocationOptions{},
		},
		{
			name:   "config with equals",
			args:   []string{`/config=C:\eduroam\campus.hcl`},
			expect: InvocationOptions{ConfigPath: `C:\eduroam\campus.hcl`},
		},
		{
			name:   "config with separate value",
			args:   []string{"/s", "-config", "campus.hcl"},
			expect: InvocationOptions{Silent: true, ConfigPath: "campus.hcl"},
		},
		{name: "upper case s", args: []string{"/S"}, expect: InvocationOptions{Silent: true}},
		{name: "upper case silent", args: []string{"/SILENT"}, expect: InvocationOptions{Silent: true}},
		{name: "mixed case help", args: []string{"/Help"}, expect: InvocationOptions{HelpRequested: true}},
		{name: "mixed case version", args: []string{"--Version"}, expect: InvocationOptions{VersionRequested: true}},
		{
			name:   "config value keeps its case",
			args:   []string{`/CONFIG=C:\Eduroam\Campus.hcl`},
			expect: InvocationOptions{ConfigPath: `C:\Eduroam\Campus.hcl`},
		},
		{
			name:   "config followed by a switch has no value",
			args:   []string{"/config", "/s"},
			expect: InvocationOptions{Silent: true},
		},
		{
			name:   "config followed by an upper case switch has no value",
			args:   []string{"/config", "/S"},
			expect: InvocationOptions{Silent: true},
		},
		{
			name:   "config with an absolute unix path",
			args:   []string{"-config", "/etc/eduroam.hcl", "-s"},
			expect: InvocationOptions{Silent: true, ConfigPath: "/etc/eduroam.hcl"},
		},
		{
			name:   "config without value is ignored",
			args:   []string{"/s", "/config"},
			expect: InvocationOptions{Silent: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseArgs(tc.args))
		})
	}
}

func TestRelaunchArgs(t *testing.T) {
	testCases := []struct {
		name       string
		opts       InvocationOptions
		configPath string
		expect     []string
	}{
		{name: "interactive", opts: InvocationOptions{}, expect: nil},
		{name: "silent", opts: InvocationOptions{Silent: true}, expect: []string{"/s"}},
		{
			name:   "help and version are not forwarded",
			opts:   InvocationOptions{Silent: true, HelpRequested: true, VersionRequested: true},
			expect: []string{"/s"},
		},
		{
			name:       "config",
			opts:       InvocationOptions{ConfigPath: "campus.hcl"},
			configPath: `C:\eduroam\campus.hcl`,
			expect:     []string{`/config=C:\eduroam\campus.hcl`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.opts.RelaunchArgs(tc.configPath))
		})
	}
}
