package ast_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/resolved"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/ast/typed"
	"github.com/opal-lang/opalc/internal/lexer"
	"github.com/opal-lang/opalc/internal/parser"
	"github.com/opal-lang/opalc/internal/span"
)

func parseUnit(t *testing.T, src string) syntax.Geode {
	t.Helper()

	geode, err := parser.ParseSource("test", src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return geode
}

func parseExpr(t *testing.T, src string) syntax.Expression {
	t.Helper()

	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected lexer error: %v", err)
	}
	expr, err := parser.ParseExpression(tokens)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return expr
}

// scope is a toy resolver: every declared name gets the next id, and paths
// refer to the latest declaration of their last segment.
type scope struct {
	ids  map[string]resolved.SymbolID
	next resolved.SymbolID
}

func newScope() *scope {
	return &scope{ids: make(map[string]resolved.SymbolID)}
}

func (s *scope) declare(n syntax.Name) (resolved.Symbol, error) {
	s.next++
	s.ids[n.Item] = s.next
	return resolved.Symbol{ID: s.next, Name: n.Item, Span: n.Span}, nil
}

func (s *scope) lookup(p syntax.Path) (resolved.Symbol, error) {
	last := p.Segments[len(p.Segments)-1]
	id, ok := s.ids[last.Item]
	if !ok {
		return resolved.Symbol{}, errors.New("unresolved name " + p.String())
	}
	return resolved.Symbol{ID: id, Name: last.Item, Span: p.Span}, nil
}

func TestUpgradeThroughPhases(t *testing.T) {
	geode := parseUnit(t, "fn f(a: u8) -> u8 { let x = a; x }")

	sc := newScope()
	var calls resolved.SymbolID
	toResolved := resolved.Upgrader{
		Extra: func(_ syntax.Extra, _ span.Span) (resolved.SymbolID, error) {
			calls++
			return calls, nil
		},
		Name: sc.declare,
		Path: sc.lookup,
	}

	res, err := toResolved.Geode(geode)
	if err != nil {
		t.Fatalf("unexpected error resolving: %v", err)
	}
	// Children are upgraded before parents, so the unit itself is last.
	if res.Extra != calls {
		t.Fatalf("expected the unit extra to be computed last (%d), got %d", calls, res.Extra)
	}
	if got, want := ast.OutlineGeode(res).String(), "(geode test#4 (fn f#1 (params (param a#2 u8)) (-> u8) (block (let x#3 a#2) x#3)))"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	toTyped := typed.Upgrader{
		Extra: func(_ resolved.SymbolID, _ span.Span) (typed.Type, error) {
			return typed.Unit, nil
		},
		Type: func(t syntax.Type) (typed.Type, error) {
			return typed.FromSyntax(t, sc.lookup)
		},
	}
	ty, err := toTyped.Geode(res)
	if err != nil {
		t.Fatalf("unexpected error typing: %v", err)
	}

	fn, ok := ty.Items[0].Item.(ast.FunctionItem[typed.Extra, typed.Name, typed.Path, typed.Type])
	if !ok {
		t.Fatalf("expected a typed FunctionItem, got %T", ty.Items[0].Item)
	}
	if _, ok := (*fn.ReturnType).(typed.Primitive); !ok {
		t.Fatalf("expected a primitive return type, got %T", *fn.ReturnType)
	}
	if fn.Body.Span != geode.Items[0].Item.(syntax.FunctionItem).Body.Span {
		t.Fatalf("expected spans to survive the upgrade")
	}
	if fn.Extra != typed.Unit {
		t.Fatalf("expected extra %v, got %v", typed.Unit, fn.Extra)
	}
}

func TestUpgradeStopsAtFirstError(t *testing.T) {
	geode := parseUnit(t, "fn f() { a + b }")

	sc := newScope()
	calls := 0
	u := resolved.Upgrader{
		Extra: func(_ syntax.Extra, _ span.Span) (resolved.SymbolID, error) {
			calls++
			return 0, nil
		},
		Name: sc.declare,
		Path: sc.lookup,
	}

	_, err := u.Geode(geode)
	if err == nil || !strings.Contains(err.Error(), "unresolved name a") {
		t.Fatalf("expected an unresolved name error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no extra to be computed after the first error, got %d calls", calls)
	}
}

func TestUpgradeWithoutConversion(t *testing.T) {
	// Names cannot become symbols by assertion alone.
	_, err := resolved.Upgrader{}.Expression(parseExpr(t, "x"))
	if err == nil {
		t.Fatalf("expected an error for a missing conversion")
	}
}

func TestOutlineString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fn f() { let foo; }", "(geode test (fn f (params) (block (let foo))))"},
		{"fn f() { let mut foo; }", "(geode test (fn f (params) (block (let mut foo))))"},
		{"fn f() { let foo: Foo; }", "(geode test (fn f (params) (block (let foo (: Foo)))))"},
		{"fn f() { foo = 4; }", "(geode test (fn f (params) (block (; (= foo 4)))))"},
		{"const C: bool = !True;", "(geode test (const C bool (! True)))"},
	}

	for i, tt := range tests {
		if got := ast.OutlineGeode(parseUnit(t, tt.input)).String(); got != tt.expected {
			t.Fatalf("tests[%d] - expected %s, got %s", i, tt.expected, got)
		}
	}
}

func TestOutlineJSON(t *testing.T) {
	out := ast.OutlineExpression(parseExpr(t, "1 + x"))

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded ast.Outline
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Kind != "arithmetic" || decoded.Text != "+" {
		t.Fatalf("expected an arithmetic node, got %+v", decoded)
	}
	if len(decoded.Children) != 2 || decoded.Children[1].Kind != "path" {
		t.Fatalf("expected two children ending in a path, got %+v", decoded.Children)
	}
	if decoded.Span != span.New(0, 5) {
		t.Fatalf("expected span 0..5, got %v", decoded.Span)
	}
}

func TestIsBlockLike(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"{ 1 }", true},
		{"if a {}", true},
		{"when a {}", true},
		{"for a in b {}", true},
		{"while a {}", true},
		{"a + b", false},
		{"f()", false},
		{"return", false},
	}

	for i, tt := range tests {
		if got := ast.IsBlockLike(parseExpr(t, tt.input).Item); got != tt.expected {
			t.Fatalf("tests[%d] - %q: expected %v, got %v", i, tt.input, tt.expected, got)
		}
	}
}

func TestInspect(t *testing.T) {
	expr := parseExpr(t, "f(a + b, [c, d])")

	var visited []string
	ast.Inspect(expr, func(e syntax.Expression) bool {
		visited = append(visited, ast.OutlineExpression(e).Kind)
		return true
	})
	want := []string{"call", "path", "arithmetic", "path", "path", "array", "path", "path"}
	if strings.Join(visited, " ") != strings.Join(want, " ") {
		t.Fatalf("expected %v, got %v", want, visited)
	}

	count := 0
	ast.Inspect(expr, func(e syntax.Expression) bool {
		count++
		_, isCall := e.Item.(syntax.CallExpr)
		return isCall
	})
	if count != 4 {
		t.Fatalf("expected pruning below the call's children, visited %d", count)
	}
}
