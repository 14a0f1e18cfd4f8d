package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
)

func (s *Server) hover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil || doc.Err != nil {
		return nil, nil
	}
	return Hover(doc, params.Position), nil
}

// Hover describes the innermost expression under pos by its outline, or
// returns nil when pos is outside every expression.
func Hover(doc *Document, pos protocol.Position) *protocol.Hover {
	expr, ok := expressionAt(doc.Geode, toOffset(doc.Source, pos))
	if !ok {
		return nil
	}

	outline := ast.OutlineExpression(expr)
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", outline.Kind)
	sb.WriteString("```\n")
	sb.WriteString(outline.String())
	sb.WriteString("\n```")

	r := toRange(doc.Source, expr.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &r,
	}
}

// expressionAt finds the innermost expression whose span contains offset.
// Sibling spans never overlap, so the last match on the way down wins.
func expressionAt(g syntax.Geode, offset int) (syntax.Expression, bool) {
	var found syntax.Expression
	ok := false
	ast.InspectGeode(g, func(e syntax.Expression) bool {
		if !e.Span.Contains(offset) {
			return false
		}
		found, ok = e, true
		return true
	})
	return found, ok
}
