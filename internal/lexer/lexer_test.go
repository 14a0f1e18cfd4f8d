package lexer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

func tokenize(t *testing.T, input string) []span.Spanned[token.Token] {
	t.Helper()

	s, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", input, err)
	}
	var toks []span.Spanned[token.Token]
	for s.Len() > 0 {
		toks = append(toks, s.Pop())
	}
	return toks
}

func lexError(t *testing.T, input string) *diag.Error {
	t.Helper()

	_, err := Tokenize(input)
	if err == nil {
		t.Fatalf("expected an error for %q", input)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error for %q, got %T", input, err)
	}
	if de.Stage != diag.StageLexer {
		t.Fatalf("expected lexer stage for %q, got %q", input, de.Stage)
	}
	return de
}

func TestNextToken_Basic(t *testing.T) {
	input := `let x = 10;`

	tests := []struct {
		expectedToken token.Token
		expectedSpan  span.Span
	}{
		{token.NewKeyword(token.LET), span.New(0, 3)},
		{token.NewIdentifier("x"), span.New(4, 5)},
		{token.NewBasic(token.ASSIGN), span.New(6, 7)},
		{token.NewInteger(10), span.New(8, 10)},
		{token.NewBasic(token.SEMICOLON), span.New(10, 11)},
		{token.EndOfInput, span.New(11, 12)},
	}

	toks := tokenize(t, input)
	if len(toks) != len(tests) {
		t.Fatalf("expected %d tokens, got %d", len(tests), len(toks))
	}
	for i, tt := range tests {
		if toks[i].Item != tt.expectedToken {
			t.Fatalf("tests[%d] - token wrong. expected=%v, got=%v", i, tt.expectedToken, toks[i].Item)
		}
		if toks[i].Span != tt.expectedSpan {
			t.Fatalf("tests[%d] - span wrong. expected=%v, got=%v", i, tt.expectedSpan, toks[i].Span)
		}
	}
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input         string
		expectedValue uint32
		expectedSpan  span.Span
	}{
		{"0", 0, span.New(0, 1)},
		{"7", 7, span.New(0, 1)},
		{"42", 42, span.New(0, 2)},
		{"1234567890", 1234567890, span.New(0, 10)},
		{"4294967295", 4294967295, span.New(0, 10)},
		{"0xDEADBEEF", 0xDEADBEEF, span.New(0, 10)},
		{"0xff", 0xff, span.New(0, 4)},
		{"0b1011", 11, span.New(0, 6)},
		{"0b0", 0, span.New(0, 3)},
	}

	for i, tt := range tests {
		toks := tokenize(t, tt.input)
		if len(toks) != 2 {
			t.Fatalf("tests[%d] - expected literal and end of input, got %v", i, toks)
		}
		if toks[0].Item != token.NewInteger(tt.expectedValue) {
			t.Fatalf("tests[%d] - value wrong. expected=%d, got=%v", i, tt.expectedValue, toks[0].Item)
		}
		if toks[0].Span != tt.expectedSpan {
			t.Fatalf("tests[%d] - span wrong. expected=%v, got=%v", i, tt.expectedSpan, toks[0].Span)
		}
		end := span.New(tt.expectedSpan.Stop, tt.expectedSpan.Stop+1)
		if !toks[1].Item.IsEnd() || toks[1].Span != end {
			t.Fatalf("tests[%d] - expected end of input at %v, got %v at %v", i, end, toks[1].Item, toks[1].Span)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, n := range []uint32{1, 9, 10, 99, 100, 65535, 65536, 1 << 31, 4294967295} {
		input := strconv.FormatUint(uint64(n), 10)
		toks := tokenize(t, input)
		if len(toks) != 2 || toks[0].Item != token.NewInteger(n) {
			t.Fatalf("%q lexed as %v", input, toks)
		}
		if toks[0].Span != span.New(0, len(input)) {
			t.Fatalf("%q has span %v", input, toks[0].Span)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input        string
		expectedCode diag.Code
		expectedSpan span.Span
	}{
		{"01", diag.CodeLexerLeadingZero, span.New(1, 2)},
		{"007", diag.CodeLexerLeadingZero, span.New(1, 2)},
		{"0x", diag.CodeLexerInvalidDigit, span.New(2, 3)},
		{"0xZ", diag.CodeLexerInvalidDigit, span.New(2, 3)},
		{"0b102", diag.CodeLexerInvalidDigit, span.New(4, 5)},
		{"12abc", diag.CodeLexerInvalidDigit, span.New(2, 3)},
		{"4294967296", diag.CodeLexerIntegerOverflow, span.New(0, 10)},
		{"0x100000000", diag.CodeLexerIntegerOverflow, span.New(0, 11)},
		{"''", diag.CodeLexerEmptyCharacter, span.New(0, 2)},
		{"'a", diag.CodeLexerUnterminatedChar, span.New(0, 3)},
		{"'ab'", diag.CodeLexerUnterminatedChar, span.New(0, 3)},
		{"'", diag.CodeLexerUnterminatedChar, span.New(0, 2)},
		{`"Brady`, diag.CodeLexerUnterminatedString, span.New(0, 7)},
		{`"\q"`, diag.CodeLexerIllegalEscape, span.New(1, 3)},
		{`'\x'`, diag.CodeLexerIllegalEscape, span.New(1, 3)},
		{`"\`, diag.CodeLexerIllegalEscape, span.New(1, 3)},
		{"let $x", diag.CodeLexerIllegalRune, span.New(4, 5)},
		{"a\x00b", diag.CodeLexerIllegalRune, span.New(1, 2)},
		{"é", diag.CodeLexerIllegalRune, span.New(0, 1)},
	}

	for i, tt := range tests {
		err := lexError(t, tt.input)
		if err.Code != tt.expectedCode {
			t.Fatalf("tests[%d] - code wrong for %q. expected=%q, got=%q (%v)", i, tt.input, tt.expectedCode, err.Code, err)
		}
		if err.Span != tt.expectedSpan {
			t.Fatalf("tests[%d] - span wrong for %q. expected=%v, got=%v", i, tt.input, tt.expectedSpan, err.Span)
		}
	}
}

func TestOverflowCarriesDetails(t *testing.T) {
	err := lexError(t, "99999999999")
	if err.Details == "" {
		t.Fatalf("expected details on overflow error")
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Token
	}{
		{"True", token.NewKeyword(token.TRUE)},
		{"False", token.NewKeyword(token.FALSE)},
		{"Unit", token.NewKeyword(token.UNIT)},
		{"true", token.NewIdentifier("true")},
		{"foo", token.NewIdentifier("foo")},
		{"_", token.NewIdentifier("_")},
		{"_foo9", token.NewIdentifier("_foo9")},
		{"fn", token.NewKeyword(token.FN)},
		{"fnord", token.NewIdentifier("fnord")},
		{"static", token.NewKeyword(token.STATIC)},
		{"u16", token.NewKeyword(token.U16)},
		{"u64", token.NewIdentifier("u64")},
	}

	for i, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Item != tt.expected {
			t.Fatalf("tests[%d] - token wrong. expected=%v, got=%v", i, tt.expected, toks[0].Item)
		}
		if toks[0].Span != span.New(0, len(tt.input)) {
			t.Fatalf("tests[%d] - span wrong. got=%v", i, toks[0].Span)
		}
	}
}

func TestStringAndCharacterLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expected     token.Token
		expectedSpan span.Span
	}{
		{`"Brady"`, token.NewString("Brady"), span.New(0, 7)},
		{`""`, token.NewString(""), span.New(0, 2)},
		{`"a\nb\t\\\"\'\0"`, token.NewString("a\nb\t\\\"'\x00"), span.New(0, 16)},
		{"\"two\nlines\"", token.NewString("two\nlines"), span.New(0, 11)},
		{`"ünï"`, token.NewString("ünï"), span.New(0, 5)},
		{`'x'`, token.NewCharacter('x'), span.New(0, 3)},
		{`'\n'`, token.NewCharacter('\n'), span.New(0, 4)},
		{`'\''`, token.NewCharacter('\''), span.New(0, 4)},
		{`'"'`, token.NewCharacter('"'), span.New(0, 3)},
		{`'\0'`, token.NewCharacter(0), span.New(0, 4)},
	}

	for i, tt := range tests {
		toks := tokenize(t, tt.input)
		if toks[0].Item != tt.expected {
			t.Fatalf("tests[%d] - token wrong. expected=%v, got=%v", i, tt.expected, toks[0].Item)
		}
		if toks[0].Span != tt.expectedSpan {
			t.Fatalf("tests[%d] - span wrong. expected=%v, got=%v", i, tt.expectedSpan, toks[0].Span)
		}
	}
}

func TestMaximalMunch(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Basic
	}{
		{"<", []token.Basic{token.LT}},
		{"<<", []token.Basic{token.SHL}},
		{"<<=", []token.Basic{token.SHL_ASSIGN}},
		{"<<<", []token.Basic{token.SHL, token.LT}},
		{"->", []token.Basic{token.ARROW}},
		{"-=", []token.Basic{token.MINUS_ASSIGN}},
		{"--", []token.Basic{token.MINUS, token.MINUS}},
		{"==>", []token.Basic{token.EQ, token.GT}},
		{"=>", []token.Basic{token.FATARROW}},
		{":::", []token.Basic{token.DOUBLE_COLON, token.COLON}},
		{"&&=", []token.Basic{token.AND, token.ASSIGN}},
		{"||", []token.Basic{token.OR}},
		{">>=>", []token.Basic{token.SHR_ASSIGN, token.GT}},
		{"!=!", []token.Basic{token.NOT_EQ, token.BANG}},
		{"^=^", []token.Basic{token.CARET_ASSIGN, token.CARET}},
		{"< <", []token.Basic{token.LT, token.LT}},
	}

	for i, tt := range tests {
		toks := tokenize(t, tt.input)
		if len(toks) != len(tt.expected)+1 {
			t.Fatalf("tests[%d] - %q: expected %d tokens, got %v", i, tt.input, len(tt.expected)+1, toks)
		}
		for j, b := range tt.expected {
			if toks[j].Item != token.NewBasic(b) {
				t.Fatalf("tests[%d] - %q token %d wrong. expected=%v, got=%v", i, tt.input, j, b, toks[j].Item)
			}
		}
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	input := "# leading comment\n\tfoo # trailing\r\n  # only comment"

	toks := tokenize(t, input)
	if len(toks) != 2 {
		t.Fatalf("expected identifier and end of input, got %v", toks)
	}
	if toks[0].Item != token.NewIdentifier("foo") || toks[0].Span != span.New(19, 22) {
		t.Fatalf("unexpected token %v at %v", toks[0].Item, toks[0].Span)
	}
	n := len([]rune(input))
	if toks[1].Span != span.New(n, n+1) {
		t.Fatalf("expected end of input at %d, got %v", n, toks[1].Span)
	}
}

func TestEmptyInput(t *testing.T) {
	toks := tokenize(t, "")
	if len(toks) != 1 || !toks[0].Item.IsEnd() || toks[0].Span != span.New(0, 1) {
		t.Fatalf("unexpected tokens for empty input: %v", toks)
	}
}

func TestNextTokenAfterEnd(t *testing.T) {
	l := New("x")
	for i := 0; i < 4; i++ {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i > 0 && !tok.Item.IsEnd() {
			t.Fatalf("call %d: expected end of input, got %v", i, tok.Item)
		}
	}
}

func TestMalformedInputNeverPanics(t *testing.T) {
	inputs := []string{
		"", "'", "\"", "\\", "0x", "0b", "0b2", "''", "'\\", "\"\\", "\x00",
		"@", "`", "~", "$", "💥", "fn(", "'ab", "\"abc\\q", "#", "# x\n'",
		"99999999999999999999999", "0xFFFFFFFFFF", "01", "0_",
	}

	for _, input := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Tokenize(%q) panicked: %v", input, r)
				}
			}()
			_, _ = Tokenize(input)
		}()
	}
}
