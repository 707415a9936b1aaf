// Package testspec defines the intermediate model for generated test suites:
// an ordered tree of named groups, guarded sections, markup calls, and raw
// code statements. The model is produced by the folder and compiler and
// consumed by the suite assembler; it carries no rendered syntax.
package testspec

// Statement is one element of a test body. Implementations form a closed
// set: Markup, Code, Section, and Group.
type Statement interface {
	isStatement()
}

// Markup renders descriptive text inside the generated test body. It is
// informational output, not an assertion.
type Markup struct {
	Text string
}

// Code is a run of verbatim source lines taken from a fenced code block.
// The lines have already been parsed for validity; they are carried as text
// so the original formatting survives into the generated file.
type Code struct {
	Lines []string
}

// Section is a completed tagged section: a titled body compiled from one
// tag's description and code. When Trailing is non-empty the body runs
// guarded, with Trailing guaranteed to execute afterward whether or not the
// body completes.
type Section struct {
	Title    string
	Body     []Statement
	Trailing []Statement
}

// Group is a named, nested collection of statements mirroring one
// declaration of the source tree.
type Group struct {
	Title    string
	Children []Statement
}

func (Markup) isStatement()  {}
func (Code) isStatement()    {}
func (Section) isStatement() {}
func (*Group) isStatement()  {}

// Empty reports whether the group has no children. Empty groups are never
// attached to a parent; callers drop them instead of emitting them.
func (g *Group) Empty() bool {
	return g == nil || len(g.Children) == 0
}
