package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuild(t *testing.T, bi *debug.BuildInfo, version, commit string) {
	t.Helper()
	prevRead, prevVersion, prevCommit, prevTime := readBuildInfo, Version, GitCommit, BuildTime
	t.Cleanup(func() {
		readBuildInfo, Version, GitCommit, BuildTime = prevRead, prevVersion, prevCommit, prevTime
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	Version, GitCommit, BuildTime = version, commit, unknown
}

func TestGetUsesEmbeddedVCSInfo(t *testing.T) {
	withBuild(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, "dev", unknown)

	info := Get()
	assert.Equal(t, "v0.4.0", info.Version)
	assert.Equal(t, "0123456789ab", info.GitCommit)
	assert.Equal(t, "2026-10-01T12:00:00Z", info.BuildTime)
	assert.True(t, info.Modified)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t,
		"cookbook v0.4.0 (0123456789ab+dirty) built 2026-10-01T12:00:00Z with "+runtime.Version()+" on "+runtime.GOOS+"/"+runtime.GOARCH,
		info.String())
}

func TestGetPrefersStampedValues(t *testing.T) {
	withBuild(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffffffff"}},
	}, "1.2.3", "abc123")

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.False(t, info.Modified)
	assert.NotContains(t, info.String(), "built")
}

func TestGetWithoutBuildInfo(t *testing.T) {
	withBuild(t, nil, "dev", unknown)

	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, unknown, info.GitCommit)
}
