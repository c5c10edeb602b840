package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/repolens/repolens/internal/version"
)

func TestShort(t *testing.T) {
	if version.Short() == "" {
		t.Error("Short() should return non-empty string")
	}
}

func TestInfo(t *testing.T) {
	info := version.Info()

	if !strings.Contains(info, "repolens") {
		t.Error("Info() should contain 'repolens'")
	}

	if !strings.Contains(info, runtime.Version()) {
		t.Errorf("Info() should contain Go version %s", runtime.Version())
	}

	expectedArch := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(info, expectedArch) {
		t.Errorf("Info() should contain OS/Arch %s", expectedArch)
	}
}

func TestInfoFormat(t *testing.T) {
	lines := strings.Split(version.Info(), "\n")

	if len(lines) < 5 {
		t.Fatalf("Info() should contain 5 lines, got %d", len(lines))
	}

	expectedPrefixes := []string{"repolens ", "Commit:", "Built:", "Go:", "OS/Arch:"}
	for i, prefix := range expectedPrefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d should start with %q, got %q", i+1, prefix, lines[i])
		}
	}
}

func TestInfoIncludesBuildMetadata(t *testing.T) {
	info := version.Info()

	if version.Version == "" || version.Commit == "" || version.Date == "" {
		t.Fatal("build metadata should not be empty")
	}

	for _, want := range []string{
		"repolens " + version.Version,
		"Commit: " + version.Commit,
		"Built: " + version.Date,
	} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() output missing %q", want)
		}
	}
}
