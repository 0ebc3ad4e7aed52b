package cli

import (
	"runtime/debug"
	"strings"
	"testing"

	"braindex/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestCurrentVersionInfoPrefersLdflags(t *testing.T) {
	prevVersion, prevCommit := buildinfo.Version, buildinfo.Commit
	buildinfo.Version, buildinfo.Commit = "v2.0.0", "deadbeef"
	t.Cleanup(func() { buildinfo.Version, buildinfo.Commit = prevVersion, prevCommit })

	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}, true)

	info := currentVersionInfo()
	if info.Version != "v2.0.0" {
		t.Errorf("Version = %q, want ldflags v2.0.0", info.Version)
	}
	if info.Commit != "deadbeef" {
		t.Errorf("Commit = %q, want ldflags deadbeef", info.Commit)
	}
}

func TestCurrentVersionInfoFallsBackToVCSStamp(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Version: "v1.2.3"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}, true)

	info := currentVersionInfo()
	if info.Version != "v1.2.3" {
		t.Errorf("Version = %q, want v1.2.3", info.Version)
	}
	if info.Commit != "abc123" {
		t.Errorf("Commit = %q, want abc123", info.Commit)
	}
	if info.GoVersion != "go1.23.4" {
		t.Errorf("GoVersion = %q, want go1.23.4", info.GoVersion)
	}
}

func TestCurrentVersionInfoDevelWhenNothingKnown(t *testing.T) {
	stubBuildInfo(t, nil, false)

	info := currentVersionInfo()
	if info.Version != "devel" {
		t.Errorf("Version = %q, want devel", info.Version)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform = %q, want goos/goarch", info.Platform)
	}
}
