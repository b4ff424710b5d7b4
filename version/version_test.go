package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuild(t *testing.T, version, commit, buildTime string, bi *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origBuildTime, origRead := Version, GitCommit, BuildTime, readBuildInfo
	t.Cleanup(func() {
		Version, GitCommit, BuildTime, readBuildInfo = origVersion, origCommit, origBuildTime, origRead
	})
	Version, GitCommit, BuildTime = version, commit, buildTime
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetDefaults(t *testing.T) {
	stubBuild(t, "dev", "", "", nil)

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.GitCommit != "" {
		t.Errorf("expected no commit, got %q", info.GitCommit)
	}
}

func TestGetInjected(t *testing.T) {
	stubBuild(t, "1.0.0", "abc1234", "2024-01-15T10:30:00Z", &debug.BuildInfo{GoVersion: "go1.25.0"})

	info := Get()
	if !info.IsRelease {
		t.Error("1.0.0 should be a release")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", info.GitCommit)
	}
	if info.GoVersion != "go1.25.0" {
		t.Errorf("expected 'go1.25.0', got %q", info.GoVersion)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
}

func TestGetFallsBackToVCSStamps(t *testing.T) {
	stubBuild(t, "dev", "", "", &debug.BuildInfo{
		GoVersion: "go1.25.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-03-01T08:00:00Z"},
		},
	})

	info := Get()
	if info.GitCommit != "0123456" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if !info.IsDirty {
		t.Error("expected dirty build")
	}
	if info.BuildTime != "2025-03-01T08:00:00Z" {
		t.Errorf("expected vcs build time, got %q", info.BuildTime)
	}
}

func TestDirtyVersionIsNotRelease(t *testing.T) {
	stubBuild(t, "1.0.0-dirty", "", "", nil)
	if Get().IsRelease {
		t.Error("dirty version should not be a release")
	}
}

func TestShort(t *testing.T) {
	stubBuild(t, "dev", "", "", nil)
	if got := Short(); got != "dev" {
		t.Errorf("expected 'dev', got %q", got)
	}

	stubBuild(t, "1.0.0", "abc1234", "", nil)
	if got := Short(); got != "1.0.0-abc1234" {
		t.Errorf("expected '1.0.0-abc1234', got %q", got)
	}

	stubBuild(t, "1.0.0", "abc1234", "", &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}},
	})
	if got := Short(); got != "1.0.0-abc1234-dirty" {
		t.Errorf("expected dirty suffix, got %q", got)
	}
}

func TestInfoString(t *testing.T) {
	stubBuild(t, "1.0.0", "abc1234", "2024-01-15T10:30:00Z", &debug.BuildInfo{GoVersion: "go1.25.0"})

	s := Get().String()
	for _, want := range []string{"1.0.0", "abc1234", "2024-01-15T10:30:00Z", "go1.25.0"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestUserAgent(t *testing.T) {
	stubBuild(t, "2.1.0", "", "", nil)
	if got := UserAgent("mcp-huiting"); got != "mcp-huiting/2.1.0" {
		t.Errorf("unexpected user agent %q", got)
	}
}
