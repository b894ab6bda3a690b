package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func setVars(t *testing.T, version, commit, date string) {
	t.Helper()
	oldV, oldC, oldD := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
}

func TestFillFrom(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	t.Run("unset", func(t *testing.T) {
		setVars(t, "dev", "none", "unknown")
		fillFrom(info)
		if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("ldflags win", func(t *testing.T) {
		setVars(t, "v1.0.0", "fff", "today")
		fillFrom(info)
		if Version != "v1.0.0" || Commit != "fff" || Date != "today" {
			t.Errorf("got %s %s %s", Version, Commit, Date)
		}
	})

	t.Run("devel module", func(t *testing.T) {
		setVars(t, "dev", "none", "unknown")
		fillFrom(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		if Version != "dev" {
			t.Errorf("Version = %s", Version)
		}
	})
}

func TestString(t *testing.T) {
	setVars(t, "v1.2.3", "abc", "2026-05-01")
	if got := String(); got != "version: v1.2.3\ncommit: abc\nbuilt: 2026-05-01" {
		t.Errorf("String() = %q", got)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
}
