package doctoken

// Token is one typed element of a documentation comment, produced by the
// Tokenizer in source order. Implementations form a closed set.
type Token interface {
	isToken()
	// Line returns the zero-based line offset of the token within the
	// comment text, used to anchor diagnostics.
	Line() int
}

// CodeBlock is a fenced or indented code block intended to be compiled and
// executed as a test body.
type CodeBlock struct {
	Text string
	line int
}

// TaggedSection is a recognized tag with an optional short name and an
// optional body description, e.g. "@example basic" followed by prose.
type TaggedSection struct {
	Label string
	Name  string // empty when the tag carries no separate name
	Body  string // empty when the tag carries no body text
	line  int
}

// UntaggedSection is a recognized tag whose remainder could not be split
// into a separate name and body.
type UntaggedSection struct {
	Label string
	Body  string
	line  int
}

// Heading is a markdown heading, level 1 through 6.
type Heading struct {
	Level int
	Text  string
	line  int
}

// Paragraph is a run of plain prose.
type Paragraph struct {
	Text string
	line int
}

// Description is prose the tokenizer could not classify as a structured
// tag even though it opens with the tag marker character. Downstream
// processing treats it as a malformed-tag candidate.
type Description struct {
	Text string
	line int
}

// InheritDoc marks an inherit-documentation directive.
type InheritDoc struct {
	line int
}

func (CodeBlock) isToken()       {}
func (TaggedSection) isToken()   {}
func (UntaggedSection) isToken() {}
func (Heading) isToken()         {}
func (Paragraph) isToken()       {}
func (Description) isToken()     {}
func (InheritDoc) isToken()      {}

func (t CodeBlock) Line() int       { return t.line }
func (t TaggedSection) Line() int   { return t.line }
func (t UntaggedSection) Line() int { return t.line }
func (t Heading) Line() int         { return t.line }
func (t Paragraph) Line() int       { return t.line }
func (t Description) Line() int     { return t.line }
func (t InheritDoc) Line() int      { return t.line }
