package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/errors"
	"github.com/matzehuels/planbook/pkg/observability"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

const testConfig = `title = "Term"
weeks = 4
months = ["Spring", "Summer"]
notes_pages = 1
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the CLI with args and returns what commands wrote to their
// output stream.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"build", "cache", "completion", "graph", "inspect", "serve"}
	var got []string
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "help":
			continue
		}
		got = append(got, cmd.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("subcommands = %v, want %v", got, want)
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "out")

	if _, err := run(t, "build", "-c", cfg, "-o", out, "-f", "svg,json", "--no-cache", "-p", "2"); err != nil {
		t.Fatal(err)
	}

	pages, err := filepath.Glob(filepath.Join(out, pipeline.PagesDirName, "*.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 8 {
		t.Errorf("wrote %d pages, want 8", len(pages))
	}

	data, err := os.ReadFile(filepath.Join(out, pipeline.ManifestFileName))
	if err != nil {
		t.Fatal(err)
	}
	var m pipeline.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.Title != "Term" || len(m.Pages) != 8 {
		t.Errorf("manifest title = %q, pages = %d", m.Title, len(m.Pages))
	}
	if _, err := os.Stat(filepath.Join(out, pipeline.PDFFileName)); !os.IsNotExist(err) {
		t.Error("pdf written without being requested")
	}
}

func TestBuildCommandErrors(t *testing.T) {
	cfg := writeConfig(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing config", []string{"build", "-c", "/nonexistent/planner.toml", "--no-cache"}, errors.ErrCodeFileNotFound},
		{"config extension", []string{"build", "-c", "planner.ini", "--no-cache"}, errors.ErrCodeInvalidConfig},
		{"unknown format", []string{"build", "-f", "svg,docx", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"empty output", []string{"build", "-c", cfg, "-o", "", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"control character in output", []string{"build", "-c", cfg, "-o", "out\x00dir", "--no-cache"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestBuildCommandVerbose(t *testing.T) {
	defer observability.Reset()
	cfg := writeConfig(t)
	out := t.TempDir()

	if _, err := run(t, "build", "-v", "-c", cfg, "-o", out, "-f", "json", "--cache", "file:"+t.TempDir()); err != nil {
		t.Fatal(err)
	}
	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Error("--verbose should install log hooks")
	}
}

func TestGraphCommand(t *testing.T) {
	cfg := writeConfig(t)
	out := filepath.Join(t.TempDir(), "nav.dot")

	if _, err := run(t, "graph", "-c", cfg, "-f", "dot", "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("graph output is not DOT: %.40q", data)
	}

	if _, err := run(t, "graph", "-c", cfg, "-f", "gif", "--no-cache"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != cache.DefaultDir() {
		t.Errorf("cache path = %q, want %q", got, cache.DefaultDir())
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "planbook:page:abc", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "cache", "clear", "--cache", "file:"+dir); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(context.Background(), "planbook:page:abc"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestNewRunnerKeyer(t *testing.T) {
	c := New(io.Discard, LogInfo)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	tests := []struct {
		name   string
		keyer  cache.Keyer
		scoped bool
	}{
		{"default", nil, false},
		{"preview", previewKeyer(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := c.newRunner(cmd, cacheFlags{noCache: true}, tt.keyer)
			if err != nil {
				t.Fatal(err)
			}
			defer runner.Close()
			page := runner.Keyer.PageKey("hash", "index")
			artifact := runner.Keyer.ArtifactKey("hash", pipeline.FormatPDF)
			for _, key := range []string{page, artifact} {
				if got := strings.HasPrefix(key, previewKeyPrefix); got != tt.scoped {
					t.Errorf("key %q scoped = %v, want %v", key, got, tt.scoped)
				}
			}
		})
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"localhost:9000": "localhost:9000",
		"0.0.0.0:80":     "0.0.0.0:80",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := run(t, "inspect", "-c", cfg, "--groups", "--outline", "--type", "weekly", "--no-cache"); err != nil {
		t.Fatal(err)
	}
}

func TestFilterPages(t *testing.T) {
	pages := testPages()
	if got := filterPages(pages, ""); len(got) != 3 {
		t.Errorf("no filter: %d pages", len(got))
	}
	got := filterPages(pages, "weekly")
	if len(got) != 1 || got[0].Key != "weekly:week=1" {
		t.Errorf("weekly filter = %v", got)
	}
	if got := filterPages(pages, "grid"); len(got) != 0 {
		t.Errorf("grid filter = %v", got)
	}
}

func TestPageTable(t *testing.T) {
	out := pageTable(testPages())
	for _, want := range []string{"Page", "Key", "index", "weekly:week=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
