package ast

import (
	"fmt"

	"github.com/opal-lang/opalc/internal/span"
)

// Upgrader rebuilds a tree of phase (X1, N1, P1, T1) as a tree of the same
// shape in phase (X2, N2, P2, T2).
//
// Children are converted before their parent, so an Extra function may rely
// on every name, path, type and extra below the node having been converted
// already. A nil function converts by type assertion, which is how a phase
// keeps a representation unchanged. The first error stops the upgrade.
type Upgrader[X1, N1, P1, T1, X2, N2, P2, T2 any] struct {
	Extra func(x X1, sp span.Span) (X2, error)
	Name  func(N1) (N2, error)
	Path  func(P1) (P2, error)
	Type  func(T1) (T2, error)
}

// Geode upgrades a whole unit.
func (u Upgrader[X1, N1, P1, T1, X2, N2, P2, T2]) Geode(g Geode[X1, N1, P1, T1]) (Geode[X2, N2, P2, T2], error) {
	r := &upgrade[X1, N1, P1, T1, X2, N2, P2, T2]{u: u}
	items := r.items(g.Items)
	name := r.name(g.Name)
	out := Geode[X2, N2, P2, T2]{Name: name, Items: items}
	out.Extra = r.extra(g.Extra, span.Span{})
	return out, r.err
}

// Item upgrades a single item.
func (u Upgrader[X1, N1, P1, T1, X2, N2, P2, T2]) Item(it Item[X1, N1, P1, T1]) (Item[X2, N2, P2, T2], error) {
	r := &upgrade[X1, N1, P1, T1, X2, N2, P2, T2]{u: u}
	out := r.item(it)
	return out, r.err
}

// Expression upgrades a single expression.
func (u Upgrader[X1, N1, P1, T1, X2, N2, P2, T2]) Expression(e Expression[X1, N1, P1, T1]) (Expression[X2, N2, P2, T2], error) {
	r := &upgrade[X1, N1, P1, T1, X2, N2, P2, T2]{u: u}
	out := r.expr(e)
	return out, r.err
}

func convert[A, B any](f func(A) (B, error), a A) (B, error) {
	if f != nil {
		return f(a)
	}
	if b, ok := any(a).(B); ok {
		return b, nil
	}
	var zero B
	return zero, fmt.Errorf("no conversion from %T to %T", a, zero)
}

// upgrade carries the first error; once set, every method is a no-op
// returning zero values.
type upgrade[X1, N1, P1, T1, X2, N2, P2, T2 any] struct {
	u   Upgrader[X1, N1, P1, T1, X2, N2, P2, T2]
	err error
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) extra(x X1, sp span.Span) X2 {
	var out X2
	if r.err != nil {
		return out
	}
	if r.u.Extra != nil {
		out, r.err = r.u.Extra(x, sp)
		return out
	}
	out, r.err = convert[X1, X2](nil, x)
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) name(n N1) N2 {
	var out N2
	if r.err == nil {
		out, r.err = convert(r.u.Name, n)
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) optName(n *N1) *N2 {
	if n == nil {
		return nil
	}
	out := r.name(*n)
	return &out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) path(p P1) P2 {
	var out P2
	if r.err == nil {
		out, r.err = convert(r.u.Path, p)
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) typ(t T1) T2 {
	var out T2
	if r.err == nil {
		out, r.err = convert(r.u.Type, t)
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) optType(t *T1) *T2 {
	if t == nil {
		return nil
	}
	out := r.typ(*t)
	return &out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) items(items []Item[X1, N1, P1, T1]) []Item[X2, N2, P2, T2] {
	out := make([]Item[X2, N2, P2, T2], 0, len(items))
	for _, it := range items {
		out = append(out, r.item(it))
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) item(it Item[X1, N1, P1, T1]) Item[X2, N2, P2, T2] {
	var kind ItemKind[X2, N2, P2, T2]
	sp := it.Span

	switch n := it.Item.(type) {
	case ModuleItem[X1, N1, P1, T1]:
		out := ModuleItem[X2, N2, P2, T2]{Name: r.name(n.Name), Inline: n.Inline, Items: r.items(n.Items)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case UseItem[X1, N1, P1, T1]:
		out := UseItem[X2, N2, P2, T2]{Tree: r.useTree(n.Tree)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case FunctionItem[X1, N1, P1, T1]:
		out := FunctionItem[X2, N2, P2, T2]{Name: r.name(n.Name)}
		for _, param := range n.Parameters {
			p := Parameter[X2, N2, P2, T2]{
				Mutability: param.Mutability,
				Name:       r.name(param.Name),
				Type:       r.typ(param.Type),
				Span:       param.Span,
			}
			p.Extra = r.extra(param.Extra, param.Span)
			out.Parameters = append(out.Parameters, p)
		}
		out.ReturnType = r.optType(n.ReturnType)
		out.Body = r.block(n.Body)
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case TypeAliasItem[X1, N1, P1, T1]:
		out := TypeAliasItem[X2, N2, P2, T2]{Name: r.name(n.Name), Type: r.typ(n.Type)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case StructItem[X1, N1, P1, T1]:
		out := StructItem[X2, N2, P2, T2]{Name: r.name(n.Name), Fields: r.fields(n.Fields)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case EnumItem[X1, N1, P1, T1]:
		out := EnumItem[X2, N2, P2, T2]{Name: r.name(n.Name)}
		for _, v := range n.Variants {
			variant := Variant[X2, N2, P2, T2]{Kind: v.Kind, Name: r.name(v.Name), Span: v.Span}
			for _, t := range v.Types {
				variant.Types = append(variant.Types, r.typ(t))
			}
			variant.Fields = r.fields(v.Fields)
			variant.Extra = r.extra(v.Extra, v.Span)
			out.Variants = append(out.Variants, variant)
		}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ConstItem[X1, N1, P1, T1]:
		out := ConstItem[X2, N2, P2, T2]{Name: r.name(n.Name), Type: r.typ(n.Type), Value: r.expr(n.Value)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case StaticItem[X1, N1, P1, T1]:
		out := StaticItem[X2, N2, P2, T2]{Name: r.name(n.Name), Type: r.typ(n.Type), Value: r.expr(n.Value)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	default:
		r.fail(fmt.Errorf("unknown item kind %T", it.Item))
	}
	return Item[X2, N2, P2, T2]{span.Wrap(kind, sp)}
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) useTree(t UseTree[X1, N1, P1, T1]) UseTree[X2, N2, P2, T2] {
	out := UseTree[X2, N2, P2, T2]{Kind: t.Kind, Path: r.path(t.Path), Alias: r.optName(t.Alias), Span: t.Span}
	for _, child := range t.Children {
		out.Children = append(out.Children, r.useTree(child))
	}
	out.Extra = r.extra(t.Extra, t.Span)
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) fields(fields []Field[X1, N1, P1, T1]) []Field[X2, N2, P2, T2] {
	var out []Field[X2, N2, P2, T2]
	for _, f := range fields {
		field := Field[X2, N2, P2, T2]{Name: r.name(f.Name), Type: r.typ(f.Type), Span: f.Span}
		field.Extra = r.extra(f.Extra, f.Span)
		out = append(out, field)
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) block(b Block[X1, N1, P1, T1]) Block[X2, N2, P2, T2] {
	out := Block[X2, N2, P2, T2]{Span: b.Span}
	for _, s := range b.Statements {
		out.Statements = append(out.Statements, r.stmt(s))
	}
	out.Tail = r.optExpr(b.Tail)
	out.Extra = r.extra(b.Extra, b.Span)
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) stmt(s Statement[X1, N1, P1, T1]) Statement[X2, N2, P2, T2] {
	var kind StatementKind[X2, N2, P2, T2]
	sp := s.Span

	switch n := s.Item.(type) {
	case LetStmt[X1, N1, P1, T1]:
		out := LetStmt[X2, N2, P2, T2]{
			Mutability: n.Mutability,
			Name:       r.name(n.Name),
			Type:       r.optType(n.Type),
			Value:      r.optExpr(n.Value),
		}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ExpressionStmt[X1, N1, P1, T1]:
		out := ExpressionStmt[X2, N2, P2, T2]{Expression: r.expr(n.Expression), Semicolon: n.Semicolon}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case EmptyStmt[X1, N1, P1, T1]:
		kind = EmptyStmt[X2, N2, P2, T2]{Extra: r.extra(n.Extra, sp)}
	default:
		r.fail(fmt.Errorf("unknown statement kind %T", s.Item))
	}
	return Statement[X2, N2, P2, T2]{span.Wrap(kind, sp)}
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) pattern(p Pattern[X1, N1, P1, T1]) Pattern[X2, N2, P2, T2] {
	var kind PatternKind[X2, N2, P2, T2]
	sp := p.Span

	switch n := p.Item.(type) {
	case WildcardPattern[X1, N1, P1, T1]:
		kind = WildcardPattern[X2, N2, P2, T2]{Extra: r.extra(n.Extra, sp)}
	case LiteralPattern[X1, N1, P1, T1]:
		kind = LiteralPattern[X2, N2, P2, T2]{Literal: n.Literal, Extra: r.extra(n.Extra, sp)}
	case BindingPattern[X1, N1, P1, T1]:
		out := BindingPattern[X2, N2, P2, T2]{Mutability: n.Mutability, Name: r.name(n.Name)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case PathPattern[X1, N1, P1, T1]:
		out := PathPattern[X2, N2, P2, T2]{Path: r.path(n.Path)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case TupleStructPattern[X1, N1, P1, T1]:
		out := TupleStructPattern[X2, N2, P2, T2]{Path: r.path(n.Path)}
		for _, el := range n.Elements {
			out.Elements = append(out.Elements, r.pattern(el))
		}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	default:
		r.fail(fmt.Errorf("unknown pattern kind %T", p.Item))
	}
	return Pattern[X2, N2, P2, T2]{span.Wrap(kind, sp)}
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) optExpr(e *Expression[X1, N1, P1, T1]) *Expression[X2, N2, P2, T2] {
	if e == nil {
		return nil
	}
	out := r.expr(*e)
	return &out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) exprs(es []Expression[X1, N1, P1, T1]) []Expression[X2, N2, P2, T2] {
	var out []Expression[X2, N2, P2, T2]
	for _, e := range es {
		out = append(out, r.expr(e))
	}
	return out
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) expr(e Expression[X1, N1, P1, T1]) Expression[X2, N2, P2, T2] {
	var kind ExpressionKind[X2, N2, P2, T2]
	sp := e.Span

	switch n := e.Item.(type) {
	case LiteralExpr[X1, N1, P1, T1]:
		kind = LiteralExpr[X2, N2, P2, T2]{Literal: n.Literal, Extra: r.extra(n.Extra, sp)}
	case PathExpr[X1, N1, P1, T1]:
		out := PathExpr[X2, N2, P2, T2]{Path: r.path(n.Path)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case PrefixExpr[X1, N1, P1, T1]:
		out := PrefixExpr[X2, N2, P2, T2]{Op: n.Op, Operand: r.optExpr(n.Operand)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ArithmeticOrLogicalExpr[X1, N1, P1, T1]:
		out := ArithmeticOrLogicalExpr[X2, N2, P2, T2]{Left: r.optExpr(n.Left), Op: n.Op, Right: r.optExpr(n.Right)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ComparisonExpr[X1, N1, P1, T1]:
		out := ComparisonExpr[X2, N2, P2, T2]{Left: r.optExpr(n.Left), Op: n.Op, Right: r.optExpr(n.Right)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case LazyBooleanExpr[X1, N1, P1, T1]:
		out := LazyBooleanExpr[X2, N2, P2, T2]{Left: r.optExpr(n.Left), Op: n.Op, Right: r.optExpr(n.Right)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case AssignmentExpr[X1, N1, P1, T1]:
		out := AssignmentExpr[X2, N2, P2, T2]{Target: r.optExpr(n.Target), Op: n.Op, Value: r.optExpr(n.Value)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ErrorPropagationExpr[X1, N1, P1, T1]:
		out := ErrorPropagationExpr[X2, N2, P2, T2]{Operand: r.optExpr(n.Operand)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case CallExpr[X1, N1, P1, T1]:
		out := CallExpr[X2, N2, P2, T2]{Callee: r.optExpr(n.Callee), Arguments: r.exprs(n.Arguments)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case IndexExpr[X1, N1, P1, T1]:
		out := IndexExpr[X2, N2, P2, T2]{Target: r.optExpr(n.Target), Index: r.optExpr(n.Index)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case FieldExpr[X1, N1, P1, T1]:
		out := FieldExpr[X2, N2, P2, T2]{Target: r.optExpr(n.Target), Field: r.name(n.Field)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case GroupExpr[X1, N1, P1, T1]:
		out := GroupExpr[X2, N2, P2, T2]{Inner: r.optExpr(n.Inner)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ArrayExpr[X1, N1, P1, T1]:
		out := ArrayExpr[X2, N2, P2, T2]{Elements: r.exprs(n.Elements)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ReturnExpr[X1, N1, P1, T1]:
		out := ReturnExpr[X2, N2, P2, T2]{Value: r.optExpr(n.Value)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case BreakExpr[X1, N1, P1, T1]:
		out := BreakExpr[X2, N2, P2, T2]{Value: r.optExpr(n.Value)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ContinueExpr[X1, N1, P1, T1]:
		kind = ContinueExpr[X2, N2, P2, T2]{Extra: r.extra(n.Extra, sp)}
	case Block[X1, N1, P1, T1]:
		kind = r.block(n)
	case IfExpr[X1, N1, P1, T1]:
		out := IfExpr[X2, N2, P2, T2]{Condition: r.optExpr(n.Condition)}
		if n.Pattern != nil {
			p := r.pattern(*n.Pattern)
			out.Pattern = &p
		}
		out.Then = r.block(n.Then)
		out.Else = r.optExpr(n.Else)
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case WhenExpr[X1, N1, P1, T1]:
		out := WhenExpr[X2, N2, P2, T2]{Subject: r.optExpr(n.Subject)}
		for _, arm := range n.Arms {
			a := Arm[X2, N2, P2, T2]{
				Pattern: r.pattern(arm.Pattern),
				Guard:   r.optExpr(arm.Guard),
				Body:    r.expr(arm.Body),
				Span:    arm.Span,
			}
			a.Extra = r.extra(arm.Extra, arm.Span)
			out.Arms = append(out.Arms, a)
		}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case ForExpr[X1, N1, P1, T1]:
		out := ForExpr[X2, N2, P2, T2]{Binding: r.name(n.Binding), Iterable: r.optExpr(n.Iterable), Body: r.block(n.Body)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	case WhileExpr[X1, N1, P1, T1]:
		out := WhileExpr[X2, N2, P2, T2]{Condition: r.optExpr(n.Condition), Body: r.block(n.Body)}
		out.Extra = r.extra(n.Extra, sp)
		kind = out
	default:
		r.fail(fmt.Errorf("unknown expression kind %T", e.Item))
	}
	return Expression[X2, N2, P2, T2]{span.Wrap(kind, sp)}
}

func (r *upgrade[X1, N1, P1, T1, X2, N2, P2, T2]) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
