// Package compiler walks a file's declaration tree bottom-up and compiles
// each documented declaration into a named test group, composing child
// groups in source order and pruning everything that comes out empty.
package compiler

import (
	"fmt"

	"github.com/docspec/docspec/internal/decltree"
	"github.com/docspec/docspec/internal/docfold"
	"github.com/docspec/docspec/internal/doctoken"
	"github.com/docspec/docspec/internal/testspec"
)

// Compiler compiles declaration trees using one tokenizer and folder pair.
// It is stateless across calls and safe for concurrent use.
type Compiler struct {
	tok    *doctoken.Tokenizer
	folder *docfold.Folder
}

// New creates a Compiler.
func New(tok *doctoken.Tokenizer, folder *docfold.Folder) *Compiler {
	return &Compiler{tok: tok, folder: folder}
}

// Compile maps one declaration node to its test group. A nil group with a
// nil error means the node produced nothing and is pruned.
func (c *Compiler) Compile(node decltree.Node) (*testspec.Group, error) {
	switch n := node.(type) {
	case *decltree.Package:
		return c.compileBranch(n.Path, n.Doc, n.Children)

	case *decltree.Container:
		return c.compileBranch(n.Name, n.Doc, n.Children)

	case *decltree.Leaf:
		stmts, err := c.foldComments(n.Doc)
		if err != nil {
			return nil, err
		}
		return group(n.Name, stmts), nil

	case *decltree.Unsupported:
		return nil, nil

	default:
		return nil, fmt.Errorf("unhandled declaration node %T", node)
	}
}

// compileBranch assembles a titled group from a node's own folded
// comments followed by its children's compiled groups in source order.
func (c *Compiler) compileBranch(title string, doc []decltree.Comment, children []decltree.Node) (*testspec.Group, error) {
	stmts, err := c.foldComments(doc)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		g, err := c.Compile(child)
		if err != nil {
			return nil, err
		}
		if !g.Empty() {
			stmts = append(stmts, g)
		}
	}
	return group(title, stmts), nil
}

// foldComments tokenizes and folds each comment in order, concatenating
// the results. Bindings introduced by one comment's preamble stay within
// that comment's statements; the fold never crosses comment boundaries.
func (c *Compiler) foldComments(doc []decltree.Comment) ([]testspec.Statement, error) {
	var out []testspec.Statement
	for _, d := range doc {
		tokens := c.tok.Tokenize(d.Text)
		stmts, err := c.folder.Fold(tokens, d.Pos)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// group applies the pruning rule: no statements, no group.
func group(title string, stmts []testspec.Statement) *testspec.Group {
	if len(stmts) == 0 {
		return nil
	}
	return &testspec.Group{Title: title, Children: stmts}
}
