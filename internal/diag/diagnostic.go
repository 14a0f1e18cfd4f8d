package diag

import (
	"fmt"

	"github.com/opal-lang/opalc/internal/span"
)

// Stage identifies which front-end phase produced the error.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Code is a stable identifier for an error.
type Code string

const (
	// Lexer errors
	CodeLexerLeadingZero        Code = "LEXER_LEADING_ZERO"
	CodeLexerInvalidDigit       Code = "LEXER_INVALID_DIGIT"
	CodeLexerIntegerOverflow    Code = "LEXER_INTEGER_OVERFLOW"
	CodeLexerEmptyCharacter     Code = "LEXER_EMPTY_CHARACTER"
	CodeLexerUnterminatedChar   Code = "LEXER_UNTERMINATED_CHARACTER"
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerIllegalEscape      Code = "LEXER_ILLEGAL_ESCAPE"
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"

	// Parser errors
	CodeParserUnexpectedToken    Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserExpectedExpression Code = "PARSER_EXPECTED_EXPRESSION"
	CodeParserExpectedItem       Code = "PARSER_EXPECTED_ITEM"
	CodeParserExpectedType       Code = "PARSER_EXPECTED_TYPE"
	CodeParserExpectedPattern    Code = "PARSER_EXPECTED_PATTERN"
	CodeParserNestingTooDeep     Code = "PARSER_NESTING_TOO_DEEP"
)

// Error is the single error type produced by the lexer and the parser. The
// first error aborts the whole run, so there is never more than one.
type Error struct {
	Stage   Stage
	Code    Code
	Span    span.Span
	Message string
	// Details optionally explains the grammar rule that was violated.
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s error at %v: %s (%s)", e.Stage, e.Span, e.Message, e.Details)
	}
	return fmt.Sprintf("%s error at %v: %s", e.Stage, e.Span, e.Message)
}

// WithDetails returns a copy of the error carrying the given details.
func (e *Error) WithDetails(details string) *Error {
	c := *e
	c.Details = details
	return &c
}

// Lexical builds a lexer error.
func Lexical(code Code, sp span.Span, format string, args ...any) *Error {
	return &Error{Stage: StageLexer, Code: code, Span: sp, Message: fmt.Sprintf(format, args...)}
}

// Syntax builds a parser error.
func Syntax(code Code, sp span.Span, format string, args ...any) *Error {
	return &Error{Stage: StageParser, Code: code, Span: sp, Message: fmt.Sprintf(format, args...)}
}

// Expected builds the canonical "Expected to find X, but found Y instead"
// error.
func Expected(stage Stage, code Code, sp span.Span, expected, found fmt.Stringer) *Error {
	return &Error{
		Stage:   stage,
		Code:    code,
		Span:    sp,
		Message: fmt.Sprintf("Expected to find %s, but found %s instead", expected, found),
	}
}

// Description is a fixed string usable wherever a fmt.Stringer is wanted.
type Description string

func (d Description) String() string { return string(d) }
