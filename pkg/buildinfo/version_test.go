package buildinfo

import (
	"strings"
	"testing"
)

func TestGenerator(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "v1.2.3", "0123456789abcdef0123"
	if got, want := Generator(), "planbook v1.2.3 (0123456789ab)"; got != want {
		t.Errorf("Generator() = %q, want %q", got, want)
	}
	Commit = "none"
	if got := Generator(); got != "planbook v1.2.3 (none)" {
		t.Errorf("Generator() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) || !strings.Contains(String(), Commit) {
		t.Error("version info missing from templates")
	}
}
