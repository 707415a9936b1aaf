package docfold

import (
	"context"
	"errors"
	"go/token"
	"log/slog"
	"testing"

	"github.com/docspec/docspec/internal/dialect"
	"github.com/docspec/docspec/internal/doctoken"
	"github.com/docspec/docspec/internal/testspec"
)

func fold(t *testing.T, comment string) []testspec.Statement {
	t.Helper()
	stmts, err := foldErr(comment)
	if err != nil {
		t.Fatalf("unexpected fold error: %v", err)
	}
	return stmts
}

func foldErr(comment string) ([]testspec.Statement, error) {
	tok := doctoken.New([]string{"example", "note"})
	f := New(dialect.Default(), discardLogger())
	return f.Fold(tok.Tokenize(comment), token.Position{Filename: "widget.go", Line: 10})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestFold_EmptyComment(t *testing.T) {
	if stmts := fold(t, ""); len(stmts) != 0 {
		t.Errorf("expected no statements, got %#v", stmts)
	}
}

func TestFold_ProseOnlyComment(t *testing.T) {
	stmts := fold(t, "just a description with no tags or code\n")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	m, ok := stmts[0].(testspec.Markup)
	if !ok {
		t.Fatalf("expected Markup, got %T", stmts[0])
	}
	if m.Text != "just a description with no tags or code" {
		t.Errorf("unexpected markup %q", m.Text)
	}
}

func TestFold_SingleTaggedSectionWithCode(t *testing.T) {
	stmts := fold(t, "@example basic\nshows construction\n\n```\nw := 1\n_ = w\n```\n")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d: %#v", len(stmts), stmts)
	}
	sec, ok := stmts[0].(testspec.Section)
	if !ok {
		t.Fatalf("expected Section, got %T", stmts[0])
	}
	if sec.Title != "example basic" {
		t.Errorf("title = %q, want %q", sec.Title, "example basic")
	}
	if len(sec.Body) != 2 {
		t.Fatalf("expected markup + code in body, got %d statements", len(sec.Body))
	}
	m, ok := sec.Body[0].(testspec.Markup)
	if !ok || m.Text != "shows construction" {
		t.Errorf("body[0] = %#v, want markup %q", sec.Body[0], "shows construction")
	}
	c, ok := sec.Body[1].(testspec.Code)
	if !ok {
		t.Fatalf("body[1]: expected Code, got %T", sec.Body[1])
	}
	if len(c.Lines) != 2 || c.Lines[0] != "w := 1" || c.Lines[1] != "_ = w" {
		t.Errorf("unexpected code lines %#v", c.Lines)
	}
	if len(sec.Trailing) != 0 {
		t.Errorf("expected no trailing statements, got %#v", sec.Trailing)
	}
}

// A tag without any code block produces nothing at all: the title-only
// form is intentionally dropped, not emitted as an empty group.
func TestFold_TagWithoutCodeIsDropped(t *testing.T) {
	stmts := fold(t, "@example basic\nshows construction\n")
	if len(stmts) != 0 {
		t.Errorf("expected tag without code to be dropped, got %#v", stmts)
	}
}

func TestFold_TwoCodeBlocksKeepSourceOrder(t *testing.T) {
	stmts := fold(t, "@example pair\n\n```\nfirst := 1\n```\n\n```\nsecond := first + 1\n_ = second\n```\n")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 section, got %d", len(stmts))
	}
	sec := stmts[0].(testspec.Section)
	if len(sec.Body) != 2 {
		t.Fatalf("expected 2 code statements, got %d", len(sec.Body))
	}
	first := sec.Body[0].(testspec.Code)
	second := sec.Body[1].(testspec.Code)
	if first.Lines[0] != "first := 1" {
		t.Errorf("body[0] = %#v, want the first block", first.Lines)
	}
	if second.Lines[0] != "second := first + 1" {
		t.Errorf("body[1] = %#v, want the second block", second.Lines)
	}
}

// Code before any tag stays at the enclosing level, ahead of the
// sections, so its bindings are shared by every sibling section.
func TestFold_PreambleCodePrecedesSections(t *testing.T) {
	stmts := fold(t, "```\nshared := 1\n_ = shared\n```\n\n@example basic\n\n```\nw := shared\n_ = w\n```\n")

	if len(stmts) != 2 {
		t.Fatalf("expected preamble + section, got %d: %#v", len(stmts), stmts)
	}
	if _, ok := stmts[0].(testspec.Code); !ok {
		t.Errorf("stmts[0]: expected preamble Code, got %T", stmts[0])
	}
	sec, ok := stmts[1].(testspec.Section)
	if !ok {
		t.Fatalf("stmts[1]: expected Section, got %T", stmts[1])
	}
	if sec.Title != "example basic" {
		t.Errorf("section title = %q", sec.Title)
	}
}

func TestFold_HeadingSplicesAsMarkup(t *testing.T) {
	stmts := fold(t, "## Setup\n\n@example basic\n\n```\nw := 1\n_ = w\n```\n")

	// The heading precedes the tag, so it lands in the shared preamble.
	if len(stmts) != 2 {
		t.Fatalf("expected markup + section, got %d: %#v", len(stmts), stmts)
	}
	m, ok := stmts[0].(testspec.Markup)
	if !ok {
		t.Fatalf("stmts[0]: expected Markup, got %T", stmts[0])
	}
	if m.Text != "## Setup" {
		t.Errorf("heading markup = %q, want %q", m.Text, "## Setup")
	}
}

func TestFold_MarkupBetweenTagAndCodeJoinsBody(t *testing.T) {
	stmts := fold(t, "@example basic\n\nextra prose\n\n```\nw := 1\n_ = w\n```\n")

	sec := stmts[0].(testspec.Section)
	if len(sec.Body) != 2 {
		t.Fatalf("expected markup + code, got %d statements", len(sec.Body))
	}
	m := sec.Body[0].(testspec.Markup)
	if m.Text != "extra prose" {
		t.Errorf("body markup = %q", m.Text)
	}
}

// Prose after a tag's last code block becomes the section's trailing
// statements, which run whether or not the guarded body completes.
func TestFold_TrailingProseRunsGuarded(t *testing.T) {
	stmts := fold(t, "@example basic\nshows construction\n\n```\nw := 1\n_ = w\n```\n\ncloses the loop\n")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 section, got %d: %#v", len(stmts), stmts)
	}
	sec := stmts[0].(testspec.Section)
	if len(sec.Body) != 2 {
		t.Fatalf("expected markup + code body, got %#v", sec.Body)
	}
	if len(sec.Trailing) != 1 {
		t.Fatalf("expected 1 trailing statement, got %#v", sec.Trailing)
	}
	m := sec.Trailing[0].(testspec.Markup)
	if m.Text != "closes the loop" {
		t.Errorf("trailing markup = %q", m.Text)
	}
}

func TestFold_InheritDocBecomesMarkup(t *testing.T) {
	stmts := fold(t, "@inheritdoc\n")

	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	m := stmts[0].(testspec.Markup)
	if m.Text != "@inheritdoc" {
		t.Errorf("markup = %q, want %q", m.Text, "@inheritdoc")
	}
}

func TestFold_MalformedCodeBlockIsFatal(t *testing.T) {
	_, err := foldErr("@example broken\n\n```\nx := (\n```\n")
	if err == nil {
		t.Fatal("expected a malformed code block error")
	}
	var mce *MalformedCodeBlockError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MalformedCodeBlockError, got %T: %v", err, err)
	}
	if mce.Position.Filename != "widget.go" {
		t.Errorf("position filename = %q", mce.Position.Filename)
	}
	if mce.Position.Line <= 10 {
		t.Errorf("position line = %d, want offset past the comment base", mce.Position.Line)
	}
}

// An unrecognized tag warns but never loses content: the text survives as
// markup and the fold succeeds.
func TestFold_MalformedTagWarnsAndRecovers(t *testing.T) {
	capture := &captureHandler{}
	tok := doctoken.New([]string{"example"})
	f := New(dialect.Default(), slog.New(capture))

	stmts, err := f.Fold(tok.Tokenize("@deprecated use NewWidget instead\n"), token.Position{Filename: "widget.go", Line: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected recovered markup, got %#v", stmts)
	}
	m := stmts[0].(testspec.Markup)
	if m.Text != "@deprecated use NewWidget instead" {
		t.Errorf("recovered markup = %q", m.Text)
	}
	if capture.warnings != 1 {
		t.Errorf("expected 1 warning, got %d", capture.warnings)
	}
}

type captureHandler struct {
	warnings int
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.warnings++
	}
	return nil
}
func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }
