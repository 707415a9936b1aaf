// Package dialect selects how input source files and embedded example code
// blocks are parsed. The input side is always full Go source; example
// blocks may be a statement list or a complete file.
package dialect

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// Source identifies the syntax of the input files.
type Source string

// SourceGo parses inputs as Go compilation units.
const SourceGo Source = "go"

// Example identifies the syntax of embedded code blocks.
type Example string

const (
	// ExampleBlock parses a code block as a statement list, the form used
	// inside a test body.
	ExampleBlock Example = "block"
	// ExampleFile parses a code block as a complete Go source file.
	ExampleFile Example = "file"
)

// Dialect pairs the input-file syntax with the embedded-example syntax.
// The two may differ: sources are always compilation units while examples
// are usually bare statements.
type Dialect struct {
	Source  Source
	Example Example
}

// Default returns Go sources with statement-list examples.
func Default() Dialect {
	return Dialect{Source: SourceGo, Example: ExampleBlock}
}

// Validate checks both members against their closed value sets.
func (d Dialect) Validate() error {
	if d.Source != SourceGo {
		return fmt.Errorf("unknown source dialect %q", d.Source)
	}
	switch d.Example {
	case ExampleBlock, ExampleFile:
		return nil
	default:
		return fmt.Errorf("unknown example dialect %q", d.Example)
	}
}

// ParseSource parses one input file, retaining comments for association.
func (d Dialect) ParseSource(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
}

// ParseExample checks that an embedded code block parses under the
// configured example syntax. The block is validated only; the original
// text is what ends up in the generated suite.
func (d Dialect) ParseExample(src string) error {
	fset := token.NewFileSet()
	switch d.Example {
	case ExampleFile:
		_, err := parser.ParseFile(fset, "example.go", src, parser.SkipObjectResolution)
		return err
	default:
		wrapped := "package p\nfunc _() {\n" + src + "\n}"
		_, err := parser.ParseFile(fset, "example.go", wrapped, parser.SkipObjectResolution)
		return err
	}
}
