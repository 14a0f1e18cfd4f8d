package ast

// Inspect traverses e depth-first, calling fn for e and every expression
// nested inside it. If fn returns false, Inspect does not descend into that
// expression's children.
func Inspect[X, N, P, T any](e Expression[X, N, P, T], fn func(Expression[X, N, P, T]) bool) {
	walker[X, N, P, T]{fn}.expr(e)
}

// InspectBlock calls fn for every expression inside b.
func InspectBlock[X, N, P, T any](b Block[X, N, P, T], fn func(Expression[X, N, P, T]) bool) {
	walker[X, N, P, T]{fn}.block(b)
}

// InspectGeode calls fn for every expression in the unit, including those in
// function bodies and const or static initializers of nested modules.
func InspectGeode[X, N, P, T any](g Geode[X, N, P, T], fn func(Expression[X, N, P, T]) bool) {
	w := walker[X, N, P, T]{fn}
	for _, it := range g.Items {
		w.item(it)
	}
}

type walker[X, N, P, T any] struct {
	fn func(Expression[X, N, P, T]) bool
}

func (w walker[X, N, P, T]) item(it Item[X, N, P, T]) {
	switch n := it.Item.(type) {
	case ModuleItem[X, N, P, T]:
		for _, child := range n.Items {
			w.item(child)
		}
	case FunctionItem[X, N, P, T]:
		w.block(n.Body)
	case ConstItem[X, N, P, T]:
		w.expr(n.Value)
	case StaticItem[X, N, P, T]:
		w.expr(n.Value)
	}
}

func (w walker[X, N, P, T]) block(b Block[X, N, P, T]) {
	for _, s := range b.Statements {
		switch n := s.Item.(type) {
		case LetStmt[X, N, P, T]:
			w.opt(n.Value)
		case ExpressionStmt[X, N, P, T]:
			w.expr(n.Expression)
		}
	}
	w.opt(b.Tail)
}

func (w walker[X, N, P, T]) opt(e *Expression[X, N, P, T]) {
	if e != nil {
		w.expr(*e)
	}
}

func (w walker[X, N, P, T]) expr(e Expression[X, N, P, T]) {
	if !w.fn(e) {
		return
	}

	switch n := e.Item.(type) {
	case PrefixExpr[X, N, P, T]:
		w.opt(n.Operand)
	case ArithmeticOrLogicalExpr[X, N, P, T]:
		w.opt(n.Left)
		w.opt(n.Right)
	case ComparisonExpr[X, N, P, T]:
		w.opt(n.Left)
		w.opt(n.Right)
	case LazyBooleanExpr[X, N, P, T]:
		w.opt(n.Left)
		w.opt(n.Right)
	case AssignmentExpr[X, N, P, T]:
		w.opt(n.Target)
		w.opt(n.Value)
	case ErrorPropagationExpr[X, N, P, T]:
		w.opt(n.Operand)
	case CallExpr[X, N, P, T]:
		w.opt(n.Callee)
		for _, arg := range n.Arguments {
			w.expr(arg)
		}
	case IndexExpr[X, N, P, T]:
		w.opt(n.Target)
		w.opt(n.Index)
	case FieldExpr[X, N, P, T]:
		w.opt(n.Target)
	case GroupExpr[X, N, P, T]:
		w.opt(n.Inner)
	case ArrayExpr[X, N, P, T]:
		for _, el := range n.Elements {
			w.expr(el)
		}
	case ReturnExpr[X, N, P, T]:
		w.opt(n.Value)
	case BreakExpr[X, N, P, T]:
		w.opt(n.Value)
	case Block[X, N, P, T]:
		w.block(n)
	case IfExpr[X, N, P, T]:
		w.opt(n.Condition)
		w.block(n.Then)
		w.opt(n.Else)
	case WhenExpr[X, N, P, T]:
		w.opt(n.Subject)
		for _, arm := range n.Arms {
			w.opt(arm.Guard)
			w.expr(arm.Body)
		}
	case ForExpr[X, N, P, T]:
		w.opt(n.Iterable)
		w.block(n.Body)
	case WhileExpr[X, N, P, T]:
		w.opt(n.Condition)
		w.block(n.Body)
	}
}
