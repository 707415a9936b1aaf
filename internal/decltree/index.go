package decltree

import (
	"go/ast"
	"go/token"
	"sort"
)

// CommentIndex maps declarations to their associated comments. It wraps
// the comment map built once per file; lookups return comments in source
// position order so iteration stays deterministic even when several
// groups match one node.
type CommentIndex struct {
	fset     *token.FileSet
	cm       ast.CommentMap
	comments []*ast.CommentGroup
}

// NewCommentIndex builds the index for one parsed file.
func NewCommentIndex(fset *token.FileSet, file *ast.File) *CommentIndex {
	return &CommentIndex{
		fset:     fset,
		cm:       ast.NewCommentMap(fset, file, file.Comments),
		comments: file.Comments,
	}
}

// Leading returns the documentation comments ending before the node, in
// position order. An empty result means the node has no test content; it
// is never an error.
func (ix *CommentIndex) Leading(n ast.Node) []Comment {
	var out []Comment
	for _, g := range ix.cm[n] {
		if g.End() < n.Pos() {
			out = append(out, ix.comment(g))
		}
	}
	sortComments(out)
	return out
}

// Trailing returns same-line comments following the node, in position
// order. The comment map associates a same-line comment with whatever
// node encloses it, so the lookup scans the file's comment list by
// position instead of keying on the node.
func (ix *CommentIndex) Trailing(n ast.Node) []Comment {
	endLine := ix.fset.Position(n.End()).Line
	var out []Comment
	for _, g := range ix.comments {
		if g.Pos() > n.End() && ix.fset.Position(g.Pos()).Line == endLine {
			out = append(out, ix.comment(g))
		}
	}
	sortComments(out)
	return out
}

func (ix *CommentIndex) comment(g *ast.CommentGroup) Comment {
	return Comment{
		Text: g.Text(),
		Pos:  ix.fset.Position(g.Pos()),
	}
}

func sortComments(cs []Comment) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Pos.Line != cs[j].Pos.Line {
			return cs[i].Pos.Line < cs[j].Pos.Line
		}
		return cs[i].Pos.Column < cs[j].Pos.Column
	})
}
