package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	wio "github.com/matzehuels/wordcloud/pkg/io"
)

// newTestCLI returns a CLI whose config and cache live in temporary
// directories and whose command output is captured.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envCache, "")
	t.Setenv(envRedisAddr, "")

	var logs, out bytes.Buffer
	c := New(&logs, log.WarnLevel)
	c.Out = &out
	return c, &out
}

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg , ,json", []string{"svg", "json"}},
		{"only commas", ",,", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"derived svg", "", "words.csv", "svg", false, "words.svg"},
		{"derived json", "", "words.csv", "json", false, "words.layout.json"},
		{"derived from layout", "", "words.layout.json", "png", true, "words.png"},
		{"explicit single", "out.svg", "words.csv", "svg", false, "out.svg"},
		{"explicit base", "out", "words.csv", "pdf", true, "out.pdf"},
		{"explicit with format ext", "out.svg", "words.csv", "png", true, "out.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	p, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, configFileName); p != want {
		t.Errorf("configPath() = %q, want %q", p, want)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(42, 3, true)
	for _, want := range []string{"42 labels", "3 degraded", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if line := statsLine(5, 0, false); strings.Contains(line, "degraded") || !strings.Contains(line, iconFresh) {
		t.Errorf("statsLine(5, 0, false) = %q", line)
	}
}

func TestWordFlagsOptions(t *testing.T) {
	tests := []struct {
		name      string
		flags     wordFlags
		wantStops []string
		wantErr   bool
	}{
		{"defaults", wordFlags{lang: "und"}, nil, false},
		{"custom stops", wordFlags{lang: "en", stopWords: "the, a"}, []string{"the", "a"}, false},
		{"disabled stops", wordFlags{lang: "tr", stopWords: "-"}, []string{}, false},
		{"bad language", wordFlags{lang: "not a tag!"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options()
			if (err != nil) != tt.wantErr {
				t.Fatalf("options() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(opts.StopWords, tt.wantStops) {
				t.Errorf("StopWords = %#v, want %#v", opts.StopWords, tt.wantStops)
			}
		})
	}
}

const testLabels = `[{"text": "alpha", "weight": 10}, {"text": "beta", "weight": 1}]`

func TestLayoutThenRender(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeTemp(t, "words.json", testLabels)
	layoutPath := filepath.Join(filepath.Dir(input), "cloud.layout.json")

	if err := run(t, c, "layout", input, "-o", layoutPath, "--width", "500", "--height", "500", "--style", "palette"); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	doc, err := wio.ImportLayoutJSON(layoutPath)
	if err != nil {
		t.Fatalf("ImportLayoutJSON() error = %v", err)
	}
	if doc.Result.Len() != 2 || doc.Style != "palette" {
		t.Fatalf("layout = %d placements, style %q; want 2, palette", doc.Result.Len(), doc.Style)
	}
	if doc.Result.Viewport.Width != 500 {
		t.Errorf("viewport width = %v, want 500", doc.Result.Viewport.Width)
	}

	base := filepath.Join(t.TempDir(), "cloud")
	if err := run(t, c, "render", layoutPath, "-f", "svg,json", "-o", base); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(`data-text="alpha"`)) {
		t.Error("svg output missing the root element or the alpha label")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRenderFromLabels(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeTemp(t, "words.csv", "text,weight\ngo,5\nrust,3\n")

	if err := run(t, c, "render", input, "--static"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(strings.TrimSuffix(input, ".csv") + ".svg")
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if bytes.Contains(svg, []byte("<script")) {
		t.Error("--static output still contains a script")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeTemp(t, "words.json", testLabels)

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", input, "-f", "gif"}},
		{"bad style", []string{"render", input, "--style", "neon"}},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.json")}},
		{"duplicate labels", []string{"render", writeTemp(t, "dup.json", `[{"text":"a","weight":1},{"text":"a","weight":2}]`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, c, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCountCommand(t *testing.T) {
	c, out := newTestCLI(t)
	input := writeTemp(t, "notes.txt", "Go go GO. Rust rust. Zig.")

	if err := run(t, c, "count", input, "--as", "csv", "--min-length", "2"); err != nil {
		t.Fatalf("count error = %v", err)
	}
	want := "text,weight\ngo,3\nrust,2\nzig,1\n"
	if out.String() != want {
		t.Errorf("count output = %q, want %q", out.String(), want)
	}
}

func TestCountCommandToFile(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeTemp(t, "notes.txt", "alpha alpha beta")
	output := filepath.Join(t.TempDir(), "labels.yaml")

	if err := run(t, c, "count", input, "-o", output); err != nil {
		t.Fatalf("count error = %v", err)
	}
	labels, err := wio.ReadLabelsFile(output, wio.CountOptions{})
	if err != nil {
		t.Fatalf("ReadLabelsFile() error = %v", err)
	}
	if len(labels) != 2 || labels[0].Text != "alpha" || labels[0].Weight != 2 {
		t.Errorf("labels = %+v, want alpha=2 first", labels)
	}
}

func TestQuadtreeCommandDOT(t *testing.T) {
	c, out := newTestCLI(t)
	input := writeTemp(t, "words.json", testLabels)

	if err := run(t, c, "quadtree", input, "-f", "dot"); err != nil {
		t.Fatalf("quadtree error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "digraph QuadTree {") {
		t.Errorf("quadtree output = %q, want DOT source", out.String())
	}

	if err := run(t, c, "quadtree", input, "-f", "png"); err == nil {
		t.Error("quadtree accepted an unsupported format")
	}
}

func TestCachePathCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := run(t, c, "cache", "path"); err != nil {
		t.Fatalf("cache path error = %v", err)
	}
	want, _ := cacheDir()
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	input := writeTemp(t, "words.json", testLabels)
	if err := run(t, c, "layout", input, "-o", filepath.Join(t.TempDir(), "l.json")); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	dir, _ := cacheDir()
	if n, _ := countFiles(dir); n == 0 {
		t.Fatal("layout did not populate the cache")
	}

	if err := run(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if n, _ := countFiles(dir); n != 0 {
		t.Errorf("%d files left after clear", n)
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := run(t, c, "completion", "bash"); err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Error("bash completion does not mention the command name")
	}
	if err := run(t, c, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unknown shell")
	}
}
