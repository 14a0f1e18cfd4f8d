package token

import (
	"fmt"
	"slices"
	"strconv"
)

// Kind is the broad class of a token.
type Kind uint8

const (
	KindEnd Kind = iota
	KindKeyword
	KindIdentifier
	KindBasic
	KindLiteral
)

// Basic is an operator or punctuation token, spelled as in source.
type Basic string

const (
	// Delimiters
	LPAREN    Basic = "("
	RPAREN    Basic = ")"
	LBRACE    Basic = "{"
	RBRACE    Basic = "}"
	LBRACKET  Basic = "["
	RBRACKET  Basic = "]"
	COMMA     Basic = ","
	SEMICOLON Basic = ";"
	DOT       Basic = "."
	QUESTION  Basic = "?"

	COLON        Basic = ":"
	DOUBLE_COLON Basic = "::"
	ARROW        Basic = "->"
	FATARROW     Basic = "=>"

	// Operators
	ASSIGN    Basic = "="
	EQ        Basic = "=="
	BANG      Basic = "!"
	NOT_EQ    Basic = "!="
	LT        Basic = "<"
	LE        Basic = "<="
	GT        Basic = ">"
	GE        Basic = ">="
	PLUS      Basic = "+"
	MINUS     Basic = "-"
	ASTERISK  Basic = "*"
	SLASH     Basic = "/"
	AMPERSAND Basic = "&"
	PIPE      Basic = "|"
	CARET     Basic = "^"
	SHL       Basic = "<<"
	SHR       Basic = ">>"
	AND       Basic = "&&"
	OR        Basic = "||"

	PLUS_ASSIGN      Basic = "+="
	MINUS_ASSIGN     Basic = "-="
	ASTERISK_ASSIGN  Basic = "*="
	SLASH_ASSIGN     Basic = "/="
	AMPERSAND_ASSIGN Basic = "&="
	PIPE_ASSIGN      Basic = "|="
	CARET_ASSIGN     Basic = "^="
	SHL_ASSIGN       Basic = "<<="
	SHR_ASSIGN       Basic = ">>="
)

var basics = map[string]Basic{}

func init() {
	for _, b := range []Basic{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, SEMICOLON, DOT, QUESTION,
		COLON, DOUBLE_COLON, ARROW, FATARROW,
		ASSIGN, EQ, BANG, NOT_EQ, LT, LE, GT, GE, PLUS, MINUS, ASTERISK, SLASH,
		AMPERSAND, PIPE, CARET, SHL, SHR, AND, OR,
		PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, AMPERSAND_ASSIGN,
		PIPE_ASSIGN, CARET_ASSIGN, SHL_ASSIGN, SHR_ASSIGN,
	} {
		basics[string(b)] = b
	}
}

// LookupBasic reports the operator or punctuation spelled text, if any.
func LookupBasic(text string) (Basic, bool) {
	b, ok := basics[text]
	return b, ok
}

func (b Basic) String() string {
	return "`" + string(b) + "`"
}

// Keyword is a reserved word, spelled as in source.
type Keyword string

const (
	FN       Keyword = "fn"
	TYPE     Keyword = "type"
	STRUCT   Keyword = "struct"
	ENUM     Keyword = "enum"
	CONST    Keyword = "const"
	STATIC   Keyword = "static"
	USE      Keyword = "use"
	MOD      Keyword = "mod"
	AS       Keyword = "as"
	LET      Keyword = "let"
	MUT      Keyword = "mut"
	IF       Keyword = "if"
	ELSE     Keyword = "else"
	WHEN     Keyword = "when"
	IS       Keyword = "is"
	FOR      Keyword = "for"
	IN       Keyword = "in"
	WHILE    Keyword = "while"
	RETURN   Keyword = "return"
	BREAK    Keyword = "break"
	CONTINUE Keyword = "continue"
	TRUE     Keyword = "True"
	FALSE    Keyword = "False"
	UNIT     Keyword = "Unit"

	// Primitive types
	U8   Keyword = "u8"
	I8   Keyword = "i8"
	U16  Keyword = "u16"
	I16  Keyword = "i16"
	U32  Keyword = "u32"
	I32  Keyword = "i32"
	BOOL Keyword = "bool"
	CHAR Keyword = "char"
	STR  Keyword = "str"
)

var keywordList = []Keyword{
	FN, TYPE, STRUCT, ENUM, CONST, STATIC, USE, MOD, AS, LET, MUT,
	IF, ELSE, WHEN, IS, FOR, IN, WHILE, RETURN, BREAK, CONTINUE,
	TRUE, FALSE, UNIT,
	U8, I8, U16, I16, U32, I32, BOOL, CHAR, STR,
}

var keywords = map[string]Keyword{}

func init() {
	for _, k := range keywordList {
		keywords[string(k)] = k
	}
}

// Keywords returns every keyword in declaration order.
func Keywords() []Keyword {
	return slices.Clone(keywordList)
}

// LookupKeyword checks if the identifier is a keyword.
func LookupKeyword(ident string) (Keyword, bool) {
	k, ok := keywords[ident]
	return k, ok
}

func (k Keyword) String() string {
	return "keyword `" + string(k) + "`"
}

// LiteralKind distinguishes literal tokens.
type LiteralKind uint8

const (
	NoLiteral LiteralKind = iota
	IntegerLiteral
	StringLiteral
	CharacterLiteral
)

// Token is a lexical token. Only the fields relevant to Kind (and, for
// literals, Literal) are set, which keeps tokens comparable.
type Token struct {
	Kind    Kind
	Keyword Keyword
	Basic   Basic
	Literal LiteralKind
	Text    string // identifier name or decoded string literal
	Int     uint32
	Char    rune
}

// EndOfInput terminates every token stream.
var EndOfInput = Token{Kind: KindEnd}

func NewKeyword(k Keyword) Token      { return Token{Kind: KindKeyword, Keyword: k} }
func NewIdentifier(name string) Token { return Token{Kind: KindIdentifier, Text: name} }
func NewBasic(b Basic) Token          { return Token{Kind: KindBasic, Basic: b} }
func NewInteger(n uint32) Token       { return Token{Kind: KindLiteral, Literal: IntegerLiteral, Int: n} }
func NewString(s string) Token        { return Token{Kind: KindLiteral, Literal: StringLiteral, Text: s} }
func NewCharacter(c rune) Token       { return Token{Kind: KindLiteral, Literal: CharacterLiteral, Char: c} }

func (t Token) IsKeyword(k Keyword) bool { return t.Kind == KindKeyword && t.Keyword == k }
func (t Token) IsBasic(b Basic) bool     { return t.Kind == KindBasic && t.Basic == b }
func (t Token) IsIdentifier() bool       { return t.Kind == KindIdentifier }
func (t Token) IsEnd() bool              { return t.Kind == KindEnd }

// String describes the token for use in error messages.
func (t Token) String() string {
	switch t.Kind {
	case KindKeyword:
		return t.Keyword.String()
	case KindIdentifier:
		return "identifier `" + t.Text + "`"
	case KindBasic:
		return t.Basic.String()
	case KindLiteral:
		switch t.Literal {
		case IntegerLiteral:
			return fmt.Sprintf("integer literal `%d`", t.Int)
		case StringLiteral:
			return "string literal " + strconv.Quote(t.Text)
		case CharacterLiteral:
			return "character literal " + strconv.QuoteRune(t.Char)
		}
	}
	return "end of input"
}
