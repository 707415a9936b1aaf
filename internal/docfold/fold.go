// Package docfold folds one documentation comment's token sequence into an
// ordered list of test statements. Tokens are processed right to left so a
// tagged section closes over the code blocks and prose that precede it in
// source order; leftover untagged content becomes a shared preamble placed
// ahead of every completed section.
package docfold

import (
	"go/token"
	"log/slog"
	"strings"

	"github.com/docspec/docspec/internal/dialect"
	"github.com/docspec/docspec/internal/doctoken"
	"github.com/docspec/docspec/internal/testspec"
)

// FoldState is the accumulator threaded through the fold: statements
// awaiting a tag boundary (code and trailing prose) plus the sections
// completed so far. At most one of pendingCode/pendingTrailing grows
// between tag boundaries; closing a tag clears both.
type FoldState struct {
	pendingCode     []testspec.Statement
	pendingTrailing []testspec.Statement
	sections        []testspec.Statement
}

// Folder folds token sequences using a fixed dialect for code-block
// validation. Malformed-tag recoveries are reported through the logger at
// warning level; they never fail the fold.
type Folder struct {
	dialect dialect.Dialect
	log     *slog.Logger
}

// New creates a Folder. A nil logger falls back to slog.Default.
func New(d dialect.Dialect, log *slog.Logger) *Folder {
	if log == nil {
		log = slog.Default()
	}
	return &Folder{dialect: d, log: log}
}

// Fold processes the tokens of one comment and returns the resulting
// statements: leftover preamble code, leftover trailing prose, then the
// completed sections in source order. base anchors diagnostics to the
// comment's location in the original file.
func (f *Folder) Fold(tokens []doctoken.Token, base token.Position) ([]testspec.Statement, error) {
	var st FoldState
	for i := len(tokens) - 1; i >= 0; i-- {
		var err error
		st, err = f.step(st, tokens[i], base)
		if err != nil {
			return nil, err
		}
	}

	out := make([]testspec.Statement, 0, len(st.pendingCode)+len(st.pendingTrailing)+len(st.sections))
	out = append(out, st.pendingCode...)
	out = append(out, st.pendingTrailing...)
	out = append(out, st.sections...)
	return out, nil
}

// step applies one token to the state.
func (f *Folder) step(st FoldState, tok doctoken.Token, base token.Position) (FoldState, error) {
	switch t := tok.(type) {
	case doctoken.CodeBlock:
		if err := f.dialect.ParseExample(t.Text); err != nil {
			return st, &MalformedCodeBlockError{Position: anchor(base, t.Line()), Err: err}
		}
		st.pendingCode = prepend(testspec.Code{Lines: codeLines(t.Text)}, st.pendingCode)

	case doctoken.TaggedSection:
		st = closeSection(st, sectionTitle(t.Label, t.Name, t.Body), t.Body)

	case doctoken.UntaggedSection:
		st = closeSection(st, sectionTitle(t.Label, "", t.Body), t.Body)

	case doctoken.Heading:
		st = splice(st, strings.Repeat("#", t.Level)+" "+t.Text)

	case doctoken.Paragraph:
		// Separator-only paragraphs carry nothing.
		if strings.TrimSpace(t.Text) != "" {
			st = splice(st, t.Text)
		}

	case doctoken.Description:
		if strings.HasPrefix(strings.TrimSpace(t.Text), "@") {
			f.log.Warn("unrecognized documentation tag, emitting text as markup",
				"position", anchor(base, t.Line()).String(),
				"text", firstLine(t.Text))
		}
		st = splice(st, t.Text)

	case doctoken.InheritDoc:
		st = splice(st, "@inheritdoc")
	}
	return st, nil
}

// closeSection completes the current accumulators into one titled section.
// A tag with no pending code is dropped entirely rather than emitted as a
// title-only group; the accumulators are still cleared so the boundary
// holds.
func closeSection(st FoldState, title, body string) FoldState {
	if len(st.pendingCode) == 0 {
		st.pendingCode, st.pendingTrailing = nil, nil
		return st
	}

	stmts := make([]testspec.Statement, 0, len(st.pendingCode)+1)
	if body != "" {
		stmts = append(stmts, testspec.Markup{Text: body})
	}
	stmts = append(stmts, st.pendingCode...)

	sec := testspec.Section{Title: title, Body: stmts, Trailing: st.pendingTrailing}
	st.sections = prepend(sec, st.sections)
	st.pendingCode, st.pendingTrailing = nil, nil
	return st
}

// splice routes markup into the accumulator whose code it annotates: once
// a code block is pending the markup must run ahead of it in the same
// scope; before any code exists it accumulates as trailing prose.
func splice(st FoldState, text string) FoldState {
	m := testspec.Markup{Text: text}
	if len(st.pendingCode) > 0 {
		st.pendingCode = prepend(m, st.pendingCode)
	} else {
		st.pendingTrailing = prepend(m, st.pendingTrailing)
	}
	return st
}

// sectionTitle builds "<label> <name>", falling back to the body text when
// the tag carries no separate name.
func sectionTitle(label, name, body string) string {
	switch {
	case name != "":
		return label + " " + name
	case body != "":
		return label + " " + strings.Join(strings.Fields(body), " ")
	default:
		return label
	}
}

// codeLines splits a code block into clean lines, trimming the common
// leading whitespace and trailing blank lines.
func codeLines(text string) []string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	margin := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := len(l) - len(strings.TrimLeft(l, " \t"))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if len(l) >= margin {
			out[i] = l[margin:]
		} else {
			out[i] = strings.TrimLeft(l, " \t")
		}
	}
	return out
}

func prepend(s testspec.Statement, list []testspec.Statement) []testspec.Statement {
	return append([]testspec.Statement{s}, list...)
}

// anchor offsets the comment's base position by a token's line offset.
func anchor(base token.Position, line int) token.Position {
	base.Line += line
	base.Column = 1
	return base
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
