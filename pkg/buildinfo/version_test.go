package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, version string, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		if !ok {
			return nil, false
		}
		return &debug.BuildInfo{Main: debug.Module{Version: version}}, true
	}
	t.Cleanup(func() { readBuildInfo = prev })
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	Version = v
	t.Cleanup(func() { Version = prev })
}

func TestResolved(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		module    string
		hasModule bool
		want      string
	}{
		{"ldflags win", "v1.2.0", "v9.9.9", true, "v1.2.0"},
		{"module version", "dev", "v0.3.1", true, "v0.3.1"},
		{"devel module", "dev", "(devel)", true, "dev"},
		{"no build info", "dev", "", false, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version)
			withBuildInfo(t, tt.module, tt.hasModule)
			if got := Resolved(); got != tt.want {
				t.Errorf("Resolved() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	withVersion(t, "v1.0.0")
	if got := Template(); !strings.Contains(got, "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.HasPrefix(got, "version: v1.0.0\n") {
		t.Errorf("String() = %q", got)
	}
	if got := CacheScope(); got != "v1.0.0:" {
		t.Errorf("CacheScope() = %q", got)
	}
}
