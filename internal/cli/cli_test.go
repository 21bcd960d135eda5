package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/export"
	"github.com/matzehuels/arranger/pkg/scene"
)

const testScene = `{
  "items": [
    {"id": "src", "x": 0, "y": 0, "width": 20, "height": 20,
     "connectors": [{"id": "out", "side": "right"}]},
    {"id": "wall", "x": 60, "y": -50, "width": 20, "height": 120},
    {"id": "dst", "x": 120, "y": 0, "width": 20, "height": 20,
     "connectors": [{"id": "in", "side": "left"}]}
  ],
  "joins": [{"id": "j", "from": "out", "to": "in"}]
}`

// run executes the root command with isolated config and cache directories.
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// The spinner writes to stderr from its own goroutine.
	var outBuf bytes.Buffer
	var errBuf syncBuffer
	c := New(&errBuf, LogInfo)
	defer c.Close()

	root := c.RootCommand()
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArrangeCommand(t *testing.T) {
	out, _, err := run(t, "", "arrange", writeScene(t))
	if err != nil {
		t.Fatalf("arrange error: %v", err)
	}

	var doc scene.ResultDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not a result document: %v\n%s", err, out)
	}
	if len(doc.Items) != 3 {
		t.Errorf("items = %d, want 3", len(doc.Items))
	}
	if len(doc.Routes) != 1 || !doc.Routes[0].Routed {
		t.Errorf("routes = %+v, want one routed join", doc.Routes)
	}
}

func TestArrangeCommandStdin(t *testing.T) {
	out, _, err := run(t, testScene, "arrange", "-", "--no-join-avoidance")
	if err != nil {
		t.Fatalf("arrange error: %v", err)
	}

	var doc scene.ResultDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(doc.Routes) != 1 || len(doc.Routes[0].Points) != 2 {
		t.Errorf("routes = %+v, want one straight route", doc.Routes)
	}
}

func TestArrangeCommandOutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "result.yaml")
	out, stderr, err := run(t, "", "arrange", writeScene(t), "-o", dest)
	if err != nil {
		t.Fatalf("arrange error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty when writing a file", out)
	}
	if !strings.Contains(stderr, dest) {
		t.Errorf("stderr = %q, should name the output file", stderr)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "global_x:") {
		t.Errorf("yaml output missing placements:\n%s", data)
	}
}

func TestArrangeCommandUnknownJoin(t *testing.T) {
	_, _, err := run(t, "", "arrange", writeScene(t), "--join", "nope")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestRouteCommand(t *testing.T) {
	out, _, err := run(t, "", "route", writeScene(t), "j")
	if err != nil {
		t.Fatalf("route error: %v", err)
	}

	var rt scene.Route
	if err := json.Unmarshal([]byte(out), &rt); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if rt.Join != "j" || !rt.Routed {
		t.Errorf("route = %+v, want routed join j", rt)
	}
	if len(rt.Points) < 3 {
		t.Errorf("route has %d points, want a detour around the wall", len(rt.Points))
	}
}

func TestGraphCommand(t *testing.T) {
	out, _, err := run(t, "", "graph", writeScene(t), "j", "-f", "dot")
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	if !strings.HasPrefix(out, "graph G {") {
		t.Errorf("output should be a DOT graph, got %q", out)
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         export.Format
		wantErr      bool
	}{
		{"", "", export.FormatDOT, false},
		{"", "graph.svg", export.FormatSVG, false},
		{"JSON", "graph.svg", export.FormatJSON, false},
		{"", "graph.gif", "", true},
	}
	for _, tt := range tests {
		got, err := graphFormat(tt.flag, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("graphFormat(%q, %q) error = %v, wantErr %v", tt.flag, tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("graphFormat(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
	}
}

func TestCachePathCommand(t *testing.T) {
	out, _, err := run(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, should end with %q", out, appName)
	}
}

func TestConfigFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"bogus\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "", "--config", cfg, "cache", "path")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "arranger") {
		t.Error("bash completion should reference the arranger command")
	}
}

func TestCLICacheDirOverride(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Cache.Dir = "/srv/arranger-cache"
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/arranger-cache" {
		t.Errorf("cacheDir() = %q, want config override", dir)
	}
}

func TestNewCacheOpenFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(&syncBuffer{}, LogInfo)
	defer c.Close()
	c.Config.Cache.Dir = filepath.Join(blocker, "cache")

	ch, err := c.newCache(context.Background(), false)
	if err == nil {
		t.Fatal("newCache() error = nil, want error")
	}
	if ch != nil {
		t.Errorf("newCache() cache = %#v, want nil interface", ch)
	}
}
