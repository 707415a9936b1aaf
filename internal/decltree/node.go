// Package decltree models the declarations of one parsed source file as a
// closed set of node kinds, each carrying only what test compilation
// needs: a name, the associated leading comments, and child declarations
// in source order.
package decltree

import "go/token"

// Comment is one documentation comment with its cleaned text and the
// position of its first line.
type Comment struct {
	Text string
	Pos  token.Position
}

// Node is one declaration. Implementations form a closed set: Package,
// Container, Leaf, and Unsupported.
type Node interface {
	isNode()
}

// Package is the root of one file's declaration tree.
type Package struct {
	Path     string // slash-qualified package path, e.g. "internal/widget"
	Doc      []Comment
	Children []Node
}

// Container is a named type declaration grouping its member declarations.
// Methods attach to the container of their receiver's base type; when that
// type is declared in another file the container is synthesized here so
// the methods still nest under the type's name.
type Container struct {
	Name     string
	Doc      []Comment
	Children []Node
}

// Leaf is a declaration with no nested members: a function, method, type
// alias, or const/var specification. Multi-name specifications render
// their full name list.
type Leaf struct {
	Name string
	Doc  []Comment
}

// Unsupported is any declaration kind outside the compiled set, such as an
// import declaration. It is carried so traversal stays exhaustive, and
// always compiles to nothing.
type Unsupported struct{}

func (*Package) isNode()     {}
func (*Container) isNode()   {}
func (*Leaf) isNode()        {}
func (*Unsupported) isNode() {}
