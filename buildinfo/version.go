// Package buildinfo provides the version of a mailparse build.
package buildinfo

import (
	"runtime/debug"
)

// Version is set at runtime based on the Go module used to build.
var Version = "(devel)"

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	Version = version(info)
}

// version returns the module version, or for development builds the vcs
// revision with a "+modifications" suffix for a dirty checkout.
func version(info *debug.BuildInfo) string {
	if info.Main.Version != "(devel)" && info.Main.Version != "" {
		return info.Main.Version
	}
	var rev, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value
		}
	}
	if rev == "" {
		return "(devel)"
	}
	switch modified {
	case "false":
		return rev
	case "true":
		return rev + "+modifications"
	}
	return rev + "+unknown"
}
