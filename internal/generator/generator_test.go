package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docspec/docspec/internal/config"
	"github.com/docspec/docspec/internal/docfold"
	"github.com/stretchr/testify/require"
)

const widgetSource = "package widget\n\n" +
	"// @example basic\n" +
	"// shows construction\n//\n" +
	"// ```\n" +
	"// w := 1\n" +
	"// _ = w\n" +
	"// ```\n" +
	"type Widget struct{}\n"

const plainSource = "package widget\n\nfunc helper() {}\n"

const brokenSource = "package widget\n\n" +
	"// @example broken\n//\n// ```\n// x := (\n// ```\n" +
	"func New() {}\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func testConfig(inputs ...string) *config.Config {
	cfg := &config.Config{
		Inputs:  inputs,
		Output:  "gen/doc_suite_test.go",
		Package: "gen",
	}
	// Load normally applies these; tests construct the config directly.
	cfg.ClassName = "DocSuite"
	cfg.Tags = []string{"example", "note"}
	cfg.Dialect = config.DialectConfig{Source: "go", Example: "block"}
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	root := writeTree(t, map[string]string{
		"widget/widget.go": widgetSource,
	})

	gen := New(testConfig(filepath.Join(root, "widget/...")), nil)
	result, err := gen.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.Files)
	require.Equal(t, 1, result.Groups)
	out := string(result.Source)
	require.Contains(t, out, `s.Run("Widget", func() {`)
	require.Contains(t, out, `s.Run("example basic", func() {`)
	require.Contains(t, out, "w := 1")
}

func TestRun_UndocumentedInputProducesEmptySuite(t *testing.T) {
	root := writeTree(t, map[string]string{
		"widget/widget.go": plainSource,
	})

	gen := New(testConfig(filepath.Join(root, "widget/...")), nil)
	result, err := gen.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.Files)
	require.Equal(t, 0, result.Groups)
	require.Contains(t, string(result.Source), "type DocSuite struct {")
}

func TestRun_Deterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/a.go": widgetSource,
		"b/b.go": widgetSource,
	})

	cfg := testConfig(filepath.Join(root, "a/..."), filepath.Join(root, "b/..."))
	first, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)

	require.True(t, bytes.Equal(first.Source, second.Source),
		"two runs over identical inputs must be byte-identical")
	require.Equal(t, 2, first.Groups, "duplicate group titles are kept, one per file")
}

// A malformed embedded example fails the whole run, attributed to its
// file; no partial output is produced.
func TestRun_MalformedExampleFailsAtomically(t *testing.T) {
	root := writeTree(t, map[string]string{
		"good/good.go": widgetSource,
		"bad/bad.go":   brokenSource,
	})

	gen := New(testConfig(filepath.Join(root, "good/..."), filepath.Join(root, "bad/...")), nil)
	result, err := gen.Run(context.Background())
	require.Error(t, err)
	require.Nil(t, result)
	require.ErrorContains(t, err, "bad.go")

	var mce *docfold.MalformedCodeBlockError
	require.ErrorAs(t, err, &mce)
}

func TestRun_NoMatchingFiles(t *testing.T) {
	root := t.TempDir()
	gen := New(testConfig(root+"/..."), nil)
	_, err := gen.Run(context.Background())
	require.ErrorContains(t, err, "matched no Go files")
}

func TestResolveInputs_SkipsTestAndHiddenFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pkg/a.go":          plainSource,
		"pkg/a_test.go":     plainSource,
		"pkg/.hidden.go":    plainSource,
		"pkg/sub/b.go":      plainSource,
		"pkg/testdata/c.go": plainSource,
		"pkg/_skipped/d.go": plainSource,
	})

	files, err := resolveInputs([]string{filepath.Join(root, "pkg/...")})
	require.NoError(t, err)

	require.Len(t, files, 2)
	require.Equal(t, filepath.Join(root, "pkg/a.go"), files[0])
	require.Equal(t, filepath.Join(root, "pkg/sub/b.go"), files[1])
}

func TestResolveInputs_NonRecursiveDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pkg/a.go":     plainSource,
		"pkg/sub/b.go": plainSource,
	})

	files, err := resolveInputs([]string{filepath.Join(root, "pkg")})
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, filepath.Join(root, "pkg/a.go"), files[0])
}

func TestPackagePath(t *testing.T) {
	tests := []struct {
		path string
		pkg  string
		want string
	}{
		{path: "internal/widget/widget.go", pkg: "widget", want: "internal/widget"},
		{path: "widget.go", pkg: "widget", want: "widget"},
		{path: "./a/b/c.go", pkg: "c", want: "a/b"},
	}
	for _, tt := range tests {
		if got := packagePath(tt.path, tt.pkg); got != tt.want {
			t.Errorf("packagePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
