// Package doctoken turns the cleaned text of one documentation comment into
// an ordered sequence of typed tokens: code blocks, tagged sections,
// headings, and prose. The block structure comes from goldmark; tag
// recognition is layered on top of paragraph openings.
package doctoken

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenizer splits documentation comments into tokens. The set of
// recognized tag labels is fixed at construction; a paragraph opening with
// "@" and an unrecognized label is emitted as a Description rather than a
// tag so no content is lost.
type Tokenizer struct {
	md   goldmark.Markdown
	tags map[string]bool
}

// New creates a Tokenizer recognizing the given tag labels.
func New(tags []string) *Tokenizer {
	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[strings.ToLower(t)] = true
	}
	return &Tokenizer{
		md:   goldmark.New(),
		tags: known,
	}
}

// Tokenize parses one comment's text and returns its tokens in source
// order. It never fails: unclassifiable content degrades to prose tokens.
func (t *Tokenizer) Tokenize(comment string) []Token {
	src := []byte(comment)
	doc := t.md.Parser().Parse(text.NewReader(src))
	lineAt := lineIndex(src)

	var tokens []Token
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			level := node.Level
			if level > 6 {
				level = 6
			}
			tokens = append(tokens, Heading{
				Level: level,
				Text:  extractText(node, src),
				line:  lineAt(blockOffset(node)),
			})

		case *ast.FencedCodeBlock:
			tokens = append(tokens, CodeBlock{
				Text: blockLines(node, src),
				line: lineAt(blockOffset(node)),
			})

		case *ast.CodeBlock:
			tokens = append(tokens, CodeBlock{
				Text: blockLines(node, src),
				line: lineAt(blockOffset(node)),
			})

		case *ast.Paragraph:
			raw := paragraphText(node, src)
			line := lineAt(blockOffset(node))
			tokens = append(tokens, t.classify(raw, line))

		default:
			// Lists, blockquotes and other block kinds carry prose only.
			raw := extractText(n, src)
			if raw != "" {
				tokens = append(tokens, Paragraph{Text: raw, line: lineAt(blockOffset(n))})
			}
		}
	}
	return tokens
}

// classify maps one paragraph's text to a prose or tag token.
func (t *Tokenizer) classify(raw string, line int) Token {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Paragraph{line: line}
	}
	// The braced form "{@inheritdoc}" starts with "{", so the directive
	// check runs before the tag-marker gate.
	if isInheritDoc(trimmed) {
		return InheritDoc{line: line}
	}
	if !strings.HasPrefix(trimmed, "@") {
		return Paragraph{Text: trimmed, line: line}
	}

	head, rest, _ := strings.Cut(trimmed[1:], "\n")
	label, remainder, _ := strings.Cut(strings.TrimSpace(head), " ")
	label = strings.ToLower(label)
	remainder = strings.TrimSpace(remainder)
	rest = strings.TrimSpace(rest)

	if label == "" || !t.tags[label] {
		return Description{Text: trimmed, line: line}
	}

	switch {
	case remainder != "" && !strings.ContainsAny(remainder, " \t"):
		// "@label name" with the rest of the paragraph as the body.
		return TaggedSection{Label: label, Name: remainder, Body: rest, line: line}
	case remainder != "" && rest != "":
		// Multi-word remainder is body text, not a name.
		return TaggedSection{Label: label, Body: remainder + "\n" + rest, line: line}
	case remainder != "":
		return UntaggedSection{Label: label, Body: remainder, line: line}
	case rest != "":
		return TaggedSection{Label: label, Body: rest, line: line}
	default:
		return UntaggedSection{Label: label, line: line}
	}
}

// isInheritDoc matches both "@inheritdoc" and the braced "{@inheritdoc}".
func isInheritDoc(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	return s == "@inheritdoc"
}

// lineIndex returns a lookup from byte offset to zero-based line number.
func lineIndex(src []byte) func(int) int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return func(offset int) int {
		line := 0
		for i, s := range starts {
			if s > offset {
				break
			}
			line = i
		}
		return line
	}
}

// blockOffset returns the source offset of a block node's first line.
func blockOffset(n ast.Node) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return lines.At(0).Start
}

// blockLines concatenates a code block's raw line segments.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// paragraphText reassembles a paragraph from its raw source lines so
// inline markers survive verbatim.
func paragraphText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// extractText gets the inline text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
