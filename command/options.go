package command

import (
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/campusnet/eduroam-installer/version"
)

// ConfigEnv names the environment variable consulted when no config flag is given.
const ConfigEnv = "EDUROAM_INSTALLER_CONFIG"

// InvocationOptions is the intent expressed on the command line. It is built once by ParseArgs and passed by value.
type InvocationOptions struct {
	Silent           bool
	HelpRequested    bool
	VersionRequested bool
	ConfigPath       string
}

// RelaunchArgs are the only arguments forwarded to an elevated copy of the installer. configPath should already
// be absolute, since the elevated process may start in a different directory and environment.
func (o InvocationOptions) RelaunchArgs(configPath string) []string {
	var args []string
	if o.Silent {
		args = append(args, "/s")
	}
	if configPath != "" {
		args = append(args, "/config="+configPath)
	}
	return args
}

func newFlagSet(o *InvocationOptions) *flag.FlagSet {
	const (
		silentUsageText  = "Suppress all prompts and messages; errors are written to stderr"
		sUsageText       = "Shorthand for /silent"
		helpUsageText    = "Print usage and exit"
		helpAliasText    = "Alias for /help"
		versionUsageText = "Print the version and exit"
		vUsageText       = "Shorthand for /version"
		configUsageText  = "Path to an HCL configuration file; defaults to $" + ConfigEnv
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	fs := flag.NewFlagSet(version.Name, flag.ContinueOnError)

	fs.BoolVar(&o.Silent, "silent", false, silentUsageText)
	fs.BoolVar(&o.Silent, "s", false, sUsageText)
	fs.BoolVar(&o.HelpRequested, "help", false, helpUsageText)
	fs.BoolVar(&o.HelpRequested, "h", false, helpAliasText)
	fs.BoolVar(&o.HelpRequested, "?", false, helpAliasText)
	fs.BoolVar(&o.VersionRequested, "version", false, versionUsageText)
	fs.BoolVar(&o.VersionRequested, "v", false, vUsageText)
	fs.StringVar(&o.ConfigPath, "config", "", configUsageText)

	// Go would print its own usage message on errors; we print ours.
	fs.SetOutput(io.Discard)
	return fs
}

// ParseArgs turns the raw argument list into InvocationOptions. Windows-style switches ("/s", "/?") and Unix-style
// flags ("-s", "--help") are both accepted. Unknown arguments are ignored rather than rejected.
func ParseArgs(args []string) InvocationOptions {
	var o InvocationOptions
	fs := newFlagSet(&o)

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		hclog.L().Debug("ignoring unparseable arguments", "args", args, "error", err)
	}
	return o
}

type boolFlag interface {
	IsBoolFlag() bool
}

// normalizeArgs rewrites known switches into "-name" or "-name=value" form and drops everything else, so that
// fs.Parse cannot fail on input we have chosen to tolerate.
func normalizeArgs(fs *flag.FlagSet, args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || (arg[0] != '/' && arg[0] != '-') {
			hclog.L().Debug("ignoring argument", "arg", arg)
			continue
		}

		name, value, hasValue := splitSwitch(arg)
		f := fs.Lookup(name)
		if f == nil {
			hclog.L().Debug("ignoring unknown flag", "arg", arg)
			continue
		}

		if bf, ok := f.Value.(boolFlag); ok && bf.IsBoolFlag() {
			if !hasValue {
				out = append(out, "-"+name)
				continue
			}
			if _, err := strconv.ParseBool(value); err != nil {
				hclog.L().Debug("ignoring flag with invalid boolean value", "arg", arg)
				continue
			}
			out = append(out, "-"+name+"="+value)
			continue
		}

		if !hasValue {
			if i+1 >= len(args) || isSwitch(fs, args[i+1]) {
				hclog.L().Debug("ignoring flag without a value", "arg", arg)
				continue
			}
			i++
			value = args[i]
		}
		out = append(out, "-"+name+"="+value)
	}
	return out
}

// splitSwitch returns the lowercased switch name of arg and its "=value" part, if any. Windows switches are case
// insensitive, so "/S" and "/s" are the same switch.
func splitSwitch(arg string) (name, value string, hasValue bool) {
	name = strings.TrimLeft(arg[1:], "-")
	if k, v, ok := strings.Cut(name, "="); ok {
		name, value, hasValue = k, v, true
	}
	return strings.ToLower(name), value, hasValue
}

// isSwitch reports whether arg is one of our own switches rather than a value. Absolute paths such as
// "/etc/eduroam.hcl" are not switches.
func isSwitch(fs *flag.FlagSet, arg string) bool {
	if len(arg) < 2 || (arg[0] != '/' && arg[0] != '-') {
		return false
	}
	name, _, _ := splitSwitch(arg)
	return fs.Lookup(name) != nil
}
