// Package generator drives the whole pipeline: it resolves the configured
// inputs to a stable file list, parses and compiles every file, and
// assembles the per-file groups into one generated suite. Files are
// processed in parallel; output order always follows input order.
package generator

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docspec/docspec/internal/compiler"
	"github.com/docspec/docspec/internal/config"
	"github.com/docspec/docspec/internal/decltree"
	"github.com/docspec/docspec/internal/dialect"
	"github.com/docspec/docspec/internal/docfold"
	"github.com/docspec/docspec/internal/doctoken"
	"github.com/docspec/docspec/internal/suite"
	"github.com/docspec/docspec/internal/testspec"
	"golang.org/x/sync/errgroup"
)

// Result is one complete generation run.
type Result struct {
	Source []byte // the generated suite
	Files  int    // input files processed
	Groups int    // per-file groups that survived pruning
}

// Generator runs the pipeline for one configuration.
type Generator struct {
	cfg *config.Config
	log *slog.Logger
}

// New creates a Generator. A nil logger falls back to slog.Default.
func New(cfg *config.Config, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{cfg: cfg, log: log}
}

// Run executes one generation pass. Any file failing to parse or compile
// fails the whole run; no partial output is produced.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	files, err := resolveInputs(g.cfg.Inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("inputs matched no Go files")
	}

	refs, err := g.cfg.SuperTypeRefs()
	if err != nil {
		return nil, err
	}

	d := g.cfg.DialectValue()
	comp := compiler.New(doctoken.New(g.cfg.Tags), docfold.New(d, g.log))

	// Each file compiles independently; results slot into input order so
	// the final concatenation is deterministic.
	groups := make([]*testspec.Group, len(files))
	eg, _ := errgroup.WithContext(ctx)
	for i, path := range files {
		i, path := i, path
		eg.Go(func() error {
			grp, err := compileFile(comp, d, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			groups[i] = grp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	kept := make([]*testspec.Group, 0, len(groups))
	for _, grp := range groups {
		if !grp.Empty() {
			kept = append(kept, grp)
		}
	}

	src, err := suite.Assemble(kept, suite.Options{
		Package:      g.cfg.Package,
		ClassName:    g.cfg.ClassName,
		SuperTypes:   refs,
		ExtraImports: g.cfg.ExtraImports,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Source: src, Files: len(files), Groups: len(kept)}, nil
}

// compileFile parses one source file and compiles its declaration tree.
func compileFile(comp *compiler.Compiler, d dialect.Dialect, path string) (*testspec.Group, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	fset := token.NewFileSet()
	file, err := d.ParseSource(fset, path, src)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	tree := decltree.Build(fset, file, packagePath(path, file.Name.Name))
	return comp.Compile(tree)
}

// packagePath derives the qualified package title from the file's
// directory, falling back to the declared package name for files in the
// working directory.
func packagePath(path, pkgName string) string {
	dir := filepath.ToSlash(filepath.Dir(filepath.Clean(path)))
	if dir == "." || dir == "/" {
		return pkgName
	}
	return strings.TrimPrefix(dir, "./")
}

// resolveInputs expands the configured inputs into a sorted, deduplicated
// list of Go files. Directories are walked recursively when given the
// "dir/..." form and non-recursively otherwise; generated outputs and
// _test files are never inputs.
func resolveInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, in := range inputs {
		recursive := strings.HasSuffix(in, "/...")
		root := strings.TrimSuffix(in, "/...")

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in, err)
		}

		if !info.IsDir() {
			if !isSourceFile(root) {
				return nil, fmt.Errorf("input %q is not a Go source file", in)
			}
			add(filepath.Clean(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != root && (!recursive || skipDir(entry.Name())) {
					return filepath.SkipDir
				}
				return nil
			}
			if isSourceFile(path) {
				add(filepath.Clean(path))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", in, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isSourceFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, ".") &&
		!strings.HasPrefix(name, "_")
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "testdata"
}
