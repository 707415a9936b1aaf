// Package suite assembles the compiled per-file test groups into one
// generated Go source file: a single suite struct embedding the
// configured base types, a runner, and one test method whose body nests
// the groups as subtests. Serialization runs through go/format so output
// is canonically formatted and byte-stable.
package suite

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"text/template"

	"github.com/docspec/docspec/internal/testspec"
)

// Options configures the generated declaration.
type Options struct {
	Package      string
	ClassName    string
	SuperTypes   []TypeRef // first is the primary base
	ExtraImports []string  // import paths examples rely on
}

var fileTemplate = template.Must(template.New("suite").Parse(`// Code generated by docspec; DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{printf "%q" .}}
{{- end}}
)

// {{.ClassName}} runs the executable examples extracted from
// documentation comments.
type {{.ClassName}} struct {
{{- range .Embeds}}
	{{.}}
{{- end}}
}

func Test{{.ClassName}}(t *testing.T) {
	{{.Runner}}.Run(t, new({{.ClassName}}))
}

func (s *{{.ClassName}}) TestDocumentedExamples() {
{{.Body}}}
`))

type fileData struct {
	Package   string
	ClassName string
	Runner    string // package qualifying the Run call, from DefaultBase
	Imports   []string
	Embeds    []string
	Body      string
}

// Assemble renders the generated suite for the given groups in order. Nil
// and empty groups are skipped; duplicate titles across groups are
// emitted as-is. The same inputs always produce identical bytes.
func Assemble(groups []*testspec.Group, opts Options) ([]byte, error) {
	supers := opts.SuperTypes
	if len(supers) == 0 {
		supers = []TypeRef{DefaultBase}
	}

	embeds := make([]string, len(supers))
	for i, s := range supers {
		embeds[i] = s.Embed()
	}

	var body bytes.Buffer
	for _, g := range groups {
		if g.Empty() {
			continue
		}
		writeGroup(&body, g, "\t")
	}

	data := fileData{
		Package:   opts.Package,
		ClassName: opts.ClassName,
		Runner:    DefaultBase.PackageName(),
		Imports:   imports(supers, opts.ExtraImports),
		Embeds:    embeds,
		Body:      body.String(),
	}

	var out bytes.Buffer
	if err := fileTemplate.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("rendering suite: %w", err)
	}

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// imports collects the deduplicated, sorted import paths of the file.
func imports(supers []TypeRef, extra []string) []string {
	// The runner qualifies its Run call with DefaultBase's package, so
	// that import is present even when the super types replace it.
	seen := map[string]bool{
		"testing":        true,
		DefaultBase.Path: true,
	}
	for _, s := range supers {
		seen[s.Path] = true
	}
	for _, p := range extra {
		seen[p] = true
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// writeGroup renders one group as a named subtest.
func writeGroup(buf *bytes.Buffer, g *testspec.Group, indent string) {
	fmt.Fprintf(buf, "%ss.Run(%s, func() {\n", indent, strconv.Quote(g.Title))
	writeStatements(buf, g.Children, indent+"\t")
	fmt.Fprintf(buf, "%s})\n", indent)
}

// writeStatements renders a statement list at the given indent. Code
// lines land verbatim; section bodies open their own block scope so
// sibling sections share no bindings, while statements written directly
// at this level stay visible to every following subtest closure.
func writeStatements(buf *bytes.Buffer, stmts []testspec.Statement, indent string) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case testspec.Markup:
			fmt.Fprintf(buf, "%ss.T().Log(%s)\n", indent, strconv.Quote(s.Text))

		case testspec.Code:
			writeCode(buf, s.Lines, indent)

		case *testspec.Group:
			writeGroup(buf, s, indent)

		case testspec.Section:
			fmt.Fprintf(buf, "%ss.Run(%s, func() {\n", indent, strconv.Quote(s.Title))
			inner := indent + "\t"
			if len(s.Trailing) > 0 {
				// Trailing statements run whether or not the body
				// completes.
				fmt.Fprintf(buf, "%sdefer func() {\n", inner)
				writeStatements(buf, s.Trailing, inner+"\t")
				fmt.Fprintf(buf, "%s}()\n", inner)
			}
			writeStatements(buf, s.Body, inner)
			fmt.Fprintf(buf, "%s})\n", indent)
		}
	}
}

func writeCode(buf *bytes.Buffer, lines []string, indent string) {
	for _, line := range lines {
		if line == "" {
			buf.WriteByte('\n')
			continue
		}
		buf.WriteString(indent)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}
