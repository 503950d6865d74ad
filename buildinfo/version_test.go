package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestVersion(t *testing.T) {
	check := func(mainVersion string, settings map[string]string, exp string) {
		t.Helper()
		info := &debug.BuildInfo{Main: debug.Module{Version: mainVersion}}
		for k, v := range settings {
			info.Settings = append(info.Settings, debug.BuildSetting{Key: k, Value: v})
		}
		if got := version(info); got != exp {
			t.Fatalf("got %q, expected %q", got, exp)
		}
	}

	check("v0.1.0", nil, "v0.1.0")
	check("(devel)", nil, "(devel)")
	check("", map[string]string{"vcs.revision": "abc"}, "abc+unknown")
	check("(devel)", map[string]string{"vcs.revision": "abc", "vcs.modified": "false"}, "abc")
	check("(devel)", map[string]string{"vcs.revision": "abc", "vcs.modified": "true"}, "abc+modifications")

	if Version == "" {
		t.Fatalf("empty version")
	}
}
