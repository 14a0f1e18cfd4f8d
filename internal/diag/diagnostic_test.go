package diag_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
)

func TestErrorMessage(t *testing.T) {
	err := diag.Lexical(diag.CodeLexerLeadingZero, span.New(1, 2), "Expected to find %s, but found %s instead", "end of integer", "`1`")

	if err.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, err.Stage)
	}
	want := "lexer error at 1..2: Expected to find end of integer, but found `1` instead"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	detailed := err.WithDetails("no leading zeroes")
	if err.Details != "" {
		t.Fatalf("WithDetails mutated the receiver")
	}
	if !strings.HasSuffix(detailed.Error(), "(no leading zeroes)") {
		t.Fatalf("details missing from %q", detailed.Error())
	}
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = diag.Syntax(diag.CodeParserExpectedItem, span.New(0, 3), "boom")
	wrapped = errors.Join(errors.New("context"), wrapped)

	var de *diag.Error
	if !errors.As(wrapped, &de) {
		t.Fatalf("expected errors.As to find *diag.Error")
	}
	if de.Stage != diag.StageParser {
		t.Fatalf("expected parser stage, got %q", de.Stage)
	}
}

func TestSourcePosition(t *testing.T) {
	src := diag.NewSource("main.op", "fn a() {}\nlet é = 1;\n")

	tests := []struct {
		offset   int
		expected diag.Position
	}{
		{0, diag.Position{Line: 1, Column: 1}},
		{9, diag.Position{Line: 1, Column: 10}},
		{10, diag.Position{Line: 2, Column: 1}},
		{14, diag.Position{Line: 2, Column: 5}},
		{100, diag.Position{Line: 3, Column: 1}},
	}

	for i, tt := range tests {
		if got := src.Position(tt.offset); got != tt.expected {
			t.Fatalf("tests[%d] - position wrong. expected=%+v, got=%+v", i, tt.expected, got)
		}
	}

	if got := src.Line(2); got != "let é = 1;" {
		t.Fatalf("expected second line, got %q", got)
	}
}

func TestSourceUTF16Position(t *testing.T) {
	src := diag.NewSource("", "\"😀\" x")

	line, char := src.UTF16Position(4)
	if line != 0 || char != 5 {
		t.Fatalf("expected 0:5, got %d:%d", line, char)
	}
}

func TestSourceUTF16Offset(t *testing.T) {
	src := diag.NewSource("", "\"😀\" x\nab")

	tests := []struct {
		line, char int
		expected   int
	}{
		{0, 0, 0},
		{0, 5, 4},
		{0, 100, 5},
		{1, 1, 7},
		{5, 0, 8},
		{-1, 3, 0},
	}

	for i, tt := range tests {
		if got := src.UTF16Offset(tt.line, tt.char); got != tt.expected {
			t.Fatalf("tests[%d] - offset wrong. expected=%d, got=%d", i, tt.expected, got)
		}
	}
}

func TestFormatterSnippet(t *testing.T) {
	src := diag.NewSource("main.op", "let x = 01;\n")
	err := diag.Lexical(diag.CodeLexerLeadingZero, span.New(9, 10), "Expected to find the end of the integer literal, but found `1` instead").
		WithDetails("decimal integer literals cannot start with `0`")

	var buf bytes.Buffer
	diag.NewFormatter(&buf).Format(src, err)
	out := buf.String()

	for _, want := range []string{
		"error[LEXER_LEADING_ZERO]: Expected to find the end of the integer literal",
		"--> main.op:1:10",
		"1 | let x = 01;",
		"  |          ^\n",
		"= note: decimal integer literals cannot start with `0`",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
