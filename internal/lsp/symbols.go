package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/opal-lang/opalc/internal/ast"
	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/diag"
	"github.com/opal-lang/opalc/internal/span"
)

func (s *Server) documentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil || doc.Err != nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return DocumentSymbols(doc), nil
}

// DocumentSymbols lists the document's items as a tree. Inline modules nest
// their items and structs and enums nest their fields and variants. Use
// declarations are not symbols.
func DocumentSymbols(doc *Document) []protocol.DocumentSymbol {
	return itemSymbols(doc.Source, doc.Geode.Items)
}

func itemSymbols(src *diag.Source, items []syntax.Item) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, it := range items {
		if sym, ok := itemSymbol(src, it); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func itemSymbol(src *diag.Source, it syntax.Item) (protocol.DocumentSymbol, bool) {
	switch n := it.Item.(type) {
	case syntax.ModuleItem:
		sym := newSymbol(src, n.Name, protocol.SymbolKindModule, it.Span, "")
		if n.Inline {
			sym.Children = itemSymbols(src, n.Items)
		}
		return sym, true
	case syntax.FunctionItem:
		return newSymbol(src, n.Name, protocol.SymbolKindFunction, it.Span, signature(n)), true
	case syntax.TypeAliasItem:
		return newSymbol(src, n.Name, protocol.SymbolKindTypeParameter, it.Span, fmt.Sprint(n.Type)), true
	case syntax.StructItem:
		sym := newSymbol(src, n.Name, protocol.SymbolKindStruct, it.Span, "")
		sym.Children = fieldSymbols(src, n.Fields)
		return sym, true
	case syntax.EnumItem:
		sym := newSymbol(src, n.Name, protocol.SymbolKindEnum, it.Span, "")
		sym.Children = []protocol.DocumentSymbol{}
		for _, v := range n.Variants {
			variant := newSymbol(src, v.Name, protocol.SymbolKindEnumMember, v.Span, "")
			if v.Kind == ast.StructVariant {
				variant.Children = fieldSymbols(src, v.Fields)
			}
			sym.Children = append(sym.Children, variant)
		}
		return sym, true
	case syntax.ConstItem:
		return newSymbol(src, n.Name, protocol.SymbolKindConstant, it.Span, fmt.Sprint(n.Type)), true
	case syntax.StaticItem:
		return newSymbol(src, n.Name, protocol.SymbolKindVariable, it.Span, fmt.Sprint(n.Type)), true
	}
	return protocol.DocumentSymbol{}, false
}

func fieldSymbols(src *diag.Source, fields []syntax.Field) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, f := range fields {
		symbols = append(symbols, newSymbol(src, f.Name, protocol.SymbolKindField, f.Span, fmt.Sprint(f.Type)))
	}
	return symbols
}

func newSymbol(src *diag.Source, name syntax.Name, kind protocol.SymbolKind, sp span.Span, detail string) protocol.DocumentSymbol {
	sym := protocol.DocumentSymbol{
		Name:           name.Item,
		Kind:           kind,
		Range:          toRange(src, sp),
		SelectionRange: toRange(src, name.Span),
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym
}

// signature renders a function header such as `fn(a: u8, mut b: bool) -> u8`.
func signature(fn syntax.FunctionItem) string {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		prefix := ""
		if p.Mutability == ast.Mutable {
			prefix = "mut "
		}
		params[i] = fmt.Sprintf("%s%s: %v", prefix, p.Name.Item, p.Type)
	}
	sig := "fn(" + strings.Join(params, ", ") + ")"
	if fn.ReturnType != nil {
		sig += " -> " + fmt.Sprint(*fn.ReturnType)
	}
	return sig
}
