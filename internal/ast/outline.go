package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opal-lang/opalc/internal/span"
)

// Outline is a phase-independent rendering of a tree, suitable for dumping as
// JSON or YAML or printing as an S-expression.
type Outline struct {
	Kind     string    `json:"kind" yaml:"kind"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	Span     span.Span `json:"span" yaml:"span"`
	Children []Outline `json:"children,omitempty" yaml:"children,omitempty"`
}

func leaf(kind, text string, sp span.Span) Outline {
	return Outline{Kind: kind, Text: text, Span: sp}
}

func node(kind, text string, sp span.Span, children ...Outline) Outline {
	return Outline{Kind: kind, Text: text, Span: sp, Children: append([]Outline{}, children...)}
}

// String renders o as an S-expression: leaves print their text, compound
// nodes print as (text children...).
func (o Outline) String() string {
	var sb strings.Builder
	o.write(&sb)
	return sb.String()
}

func (o Outline) label() string {
	if o.Text != "" {
		return o.Text
	}
	return o.Kind
}

func (o Outline) write(sb *strings.Builder) {
	if o.Children == nil {
		sb.WriteString(o.label())
		return
	}
	sb.WriteByte('(')
	sb.WriteString(o.label())
	for _, c := range o.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}

// OutlineGeode renders a whole unit.
func OutlineGeode[X, N, P, T any](g Geode[X, N, P, T]) Outline {
	o := outliner[X, N, P, T]{}
	out := node("geode", "geode", span.Span{}, leaf("name", fmt.Sprint(g.Name), span.Span{}))
	for _, it := range g.Items {
		out.Children = append(out.Children, o.item(it))
	}
	if len(g.Items) > 0 {
		out.Span = span.Between(g.Items[0].Span, g.Items[len(g.Items)-1].Span)
	}
	return out
}

// OutlineItem renders a single item.
func OutlineItem[X, N, P, T any](it Item[X, N, P, T]) Outline {
	return outliner[X, N, P, T]{}.item(it)
}

// OutlineExpression renders a single expression.
func OutlineExpression[X, N, P, T any](e Expression[X, N, P, T]) Outline {
	return outliner[X, N, P, T]{}.expr(e)
}

// OutlineStatement renders a single statement.
func OutlineStatement[X, N, P, T any](s Statement[X, N, P, T]) Outline {
	return outliner[X, N, P, T]{}.stmt(s)
}

// OutlinePattern renders a single pattern.
func OutlinePattern[X, N, P, T any](p Pattern[X, N, P, T]) Outline {
	return outliner[X, N, P, T]{}.pattern(p)
}

type outliner[X, N, P, T any] struct{}

func (outliner[X, N, P, T]) name(n N, sp span.Span) Outline {
	return leaf("name", fmt.Sprint(n), sp)
}

func (outliner[X, N, P, T]) typ(t T, sp span.Span) Outline {
	return leaf("type", fmt.Sprint(t), sp)
}

func (o outliner[X, N, P, T]) item(it Item[X, N, P, T]) Outline {
	sp := it.Span

	switch n := it.Item.(type) {
	case ModuleItem[X, N, P, T]:
		if !n.Inline {
			return node("module-declaration", "mod", sp, o.name(n.Name, sp))
		}
		out := node("module", "mod", sp, o.name(n.Name, sp))
		for _, child := range n.Items {
			out.Children = append(out.Children, o.item(child))
		}
		return out
	case UseItem[X, N, P, T]:
		return node("use", "use", sp, o.useTree(n.Tree))
	case FunctionItem[X, N, P, T]:
		params := node("parameters", "params", sp)
		for _, p := range n.Parameters {
			text := "param"
			if p.Mutability == Mutable {
				text = "mut"
			}
			params.Children = append(params.Children, node("parameter", text, p.Span, o.name(p.Name, p.Span), o.typ(p.Type, p.Span)))
		}
		out := node("function", "fn", sp, o.name(n.Name, sp), params)
		if n.ReturnType != nil {
			out.Children = append(out.Children, node("return-type", "->", sp, o.typ(*n.ReturnType, sp)))
		}
		out.Children = append(out.Children, o.block(n.Body))
		return out
	case TypeAliasItem[X, N, P, T]:
		return node("type-alias", "type", sp, o.name(n.Name, sp), o.typ(n.Type, sp))
	case StructItem[X, N, P, T]:
		out := node("struct", "struct", sp, o.name(n.Name, sp))
		out.Children = append(out.Children, o.fields(n.Fields)...)
		return out
	case EnumItem[X, N, P, T]:
		out := node("enum", "enum", sp, o.name(n.Name, sp))
		for _, v := range n.Variants {
			variant := node("variant", fmt.Sprint(v.Name), v.Span)
			switch v.Kind {
			case TupleVariant:
				for _, t := range v.Types {
					variant.Children = append(variant.Children, o.typ(t, v.Span))
				}
			case StructVariant:
				variant.Children = append(variant.Children, o.fields(v.Fields)...)
			}
			out.Children = append(out.Children, variant)
		}
		return out
	case ConstItem[X, N, P, T]:
		return node("const", "const", sp, o.name(n.Name, sp), o.typ(n.Type, sp), o.expr(n.Value))
	case StaticItem[X, N, P, T]:
		return node("static", "static", sp, o.name(n.Name, sp), o.typ(n.Type, sp), o.expr(n.Value))
	}
	return leaf("unknown", fmt.Sprintf("%T", it.Item), sp)
}

func (o outliner[X, N, P, T]) fields(fields []Field[X, N, P, T]) []Outline {
	var out []Outline
	for _, f := range fields {
		out = append(out, node("field", "field", f.Span, o.name(f.Name, f.Span), o.typ(f.Type, f.Span)))
	}
	return out
}

func (o outliner[X, N, P, T]) useTree(t UseTree[X, N, P, T]) Outline {
	prefix := fmt.Sprint(t.Path)
	join := func(suffix string) string {
		if prefix == "" {
			return suffix
		}
		return prefix + "::" + suffix
	}

	switch t.Kind {
	case UseGlob:
		return leaf("use-glob", join("*"), t.Span)
	case UseNested:
		out := node("use-nested", join("{}"), t.Span)
		for _, child := range t.Children {
			out.Children = append(out.Children, o.useTree(child))
		}
		return out
	}
	if t.Alias != nil {
		return node("use-alias", "as", t.Span, leaf("path", prefix, t.Span), o.name(*t.Alias, t.Span))
	}
	return leaf("path", prefix, t.Span)
}

func (o outliner[X, N, P, T]) block(b Block[X, N, P, T]) Outline {
	out := node("block", "block", b.Span)
	for _, s := range b.Statements {
		out.Children = append(out.Children, o.stmt(s))
	}
	if b.Tail != nil {
		out.Children = append(out.Children, o.expr(*b.Tail))
	}
	return out
}

func (o outliner[X, N, P, T]) stmt(s Statement[X, N, P, T]) Outline {
	sp := s.Span

	switch n := s.Item.(type) {
	case LetStmt[X, N, P, T]:
		text := "let"
		if n.Mutability == Mutable {
			text = "let mut"
		}
		out := node("let", text, sp, o.name(n.Name, sp))
		if n.Type != nil {
			out.Children = append(out.Children, node("annotation", ":", sp, o.typ(*n.Type, sp)))
		}
		if n.Value != nil {
			out.Children = append(out.Children, o.expr(*n.Value))
		}
		return out
	case ExpressionStmt[X, N, P, T]:
		if !n.Semicolon {
			return o.expr(n.Expression)
		}
		return node("expression-statement", ";", sp, o.expr(n.Expression))
	case EmptyStmt[X, N, P, T]:
		return leaf("empty", ";", sp)
	}
	return leaf("unknown", fmt.Sprintf("%T", s.Item), sp)
}

func literalText(l Literal) string {
	switch l.Kind {
	case IntegerLiteral:
		return strconv.FormatUint(uint64(l.Int), 10)
	case StringLiteral:
		return strconv.Quote(l.Text)
	case CharacterLiteral:
		return strconv.QuoteRune(l.Char)
	case BooleanLiteral:
		if l.Bool {
			return "True"
		}
		return "False"
	}
	return "Unit"
}

func (o outliner[X, N, P, T]) pattern(p Pattern[X, N, P, T]) Outline {
	sp := p.Span

	switch n := p.Item.(type) {
	case WildcardPattern[X, N, P, T]:
		return leaf("wildcard", "_", sp)
	case LiteralPattern[X, N, P, T]:
		return leaf("literal", literalText(n.Literal), sp)
	case BindingPattern[X, N, P, T]:
		if n.Mutability == Mutable {
			return node("binding", "mut", sp, o.name(n.Name, sp))
		}
		return leaf("binding", fmt.Sprint(n.Name), sp)
	case PathPattern[X, N, P, T]:
		return leaf("path", fmt.Sprint(n.Path), sp)
	case TupleStructPattern[X, N, P, T]:
		out := node("tuple-struct", fmt.Sprint(n.Path), sp)
		for _, el := range n.Elements {
			out.Children = append(out.Children, o.pattern(el))
		}
		return out
	}
	return leaf("unknown", fmt.Sprintf("%T", p.Item), sp)
}

func (o outliner[X, N, P, T]) opt(kind string, e *Expression[X, N, P, T], sp span.Span) Outline {
	if e == nil {
		return node(kind, kind, sp)
	}
	return node(kind, kind, sp, o.expr(*e))
}

func (o outliner[X, N, P, T]) expr(e Expression[X, N, P, T]) Outline {
	sp := e.Span

	switch n := e.Item.(type) {
	case LiteralExpr[X, N, P, T]:
		return leaf("literal", literalText(n.Literal), sp)
	case PathExpr[X, N, P, T]:
		return leaf("path", fmt.Sprint(n.Path), sp)
	case PrefixExpr[X, N, P, T]:
		return node("prefix", string(n.Op), sp, o.expr(*n.Operand))
	case ArithmeticOrLogicalExpr[X, N, P, T]:
		return node("arithmetic", string(n.Op), sp, o.expr(*n.Left), o.expr(*n.Right))
	case ComparisonExpr[X, N, P, T]:
		return node("comparison", string(n.Op), sp, o.expr(*n.Left), o.expr(*n.Right))
	case LazyBooleanExpr[X, N, P, T]:
		return node("lazy-boolean", string(n.Op), sp, o.expr(*n.Left), o.expr(*n.Right))
	case AssignmentExpr[X, N, P, T]:
		return node("assignment", string(n.Op), sp, o.expr(*n.Target), o.expr(*n.Value))
	case ErrorPropagationExpr[X, N, P, T]:
		return node("error-propagation", "?", sp, o.expr(*n.Operand))
	case CallExpr[X, N, P, T]:
		out := node("call", "call", sp, o.expr(*n.Callee))
		for _, arg := range n.Arguments {
			out.Children = append(out.Children, o.expr(arg))
		}
		return out
	case IndexExpr[X, N, P, T]:
		return node("index", "index", sp, o.expr(*n.Target), o.expr(*n.Index))
	case FieldExpr[X, N, P, T]:
		return node("field", ".", sp, o.expr(*n.Target), o.name(n.Field, sp))
	case GroupExpr[X, N, P, T]:
		return node("group", "group", sp, o.expr(*n.Inner))
	case ArrayExpr[X, N, P, T]:
		out := node("array", "array", sp)
		for _, el := range n.Elements {
			out.Children = append(out.Children, o.expr(el))
		}
		return out
	case ReturnExpr[X, N, P, T]:
		return o.opt("return", n.Value, sp)
	case BreakExpr[X, N, P, T]:
		return o.opt("break", n.Value, sp)
	case ContinueExpr[X, N, P, T]:
		return leaf("continue", "continue", sp)
	case Block[X, N, P, T]:
		return o.block(n)
	case IfExpr[X, N, P, T]:
		out := node("if", "if", sp, o.expr(*n.Condition))
		if n.Pattern != nil {
			out.Children = append(out.Children, node("is", "is", n.Pattern.Span, o.pattern(*n.Pattern)))
		}
		out.Children = append(out.Children, o.block(n.Then))
		if n.Else != nil {
			out.Children = append(out.Children, o.expr(*n.Else))
		}
		return out
	case WhenExpr[X, N, P, T]:
		out := node("when", "when", sp, o.expr(*n.Subject))
		for _, arm := range n.Arms {
			a := node("arm", "=>", arm.Span, o.pattern(arm.Pattern))
			if arm.Guard != nil {
				a.Children = append(a.Children, node("guard", "if", arm.Guard.Span, o.expr(*arm.Guard)))
			}
			a.Children = append(a.Children, o.expr(arm.Body))
			out.Children = append(out.Children, a)
		}
		return out
	case ForExpr[X, N, P, T]:
		return node("for", "for", sp, o.name(n.Binding, sp), o.expr(*n.Iterable), o.block(n.Body))
	case WhileExpr[X, N, P, T]:
		return node("while", "while", sp, o.expr(*n.Condition), o.block(n.Body))
	}
	return leaf("unknown", fmt.Sprintf("%T", e.Item), sp)
}
