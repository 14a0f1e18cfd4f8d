package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/token"
)

func (s *Server) completion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return protocol.CompletionList{Items: Completions(s.Document(params.TextDocument.URI))}, nil
}

// Completions offers every keyword plus, when doc parsed cleanly, the names
// of its items. doc may be nil.
func Completions(doc *Document) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	if doc != nil && doc.Err == nil {
		items = append(items, itemCompletions(doc.Geode.Items, "")...)
	}

	keyword := protocol.CompletionItemKindKeyword
	for _, kw := range token.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label: string(kw),
			Kind:  &keyword,
		})
	}
	return items
}

// itemCompletions lists the names declared by items. Names inside inline
// modules are offered qualified by the module path.
func itemCompletions(items []syntax.Item, prefix string) []protocol.CompletionItem {
	var out []protocol.CompletionItem
	add := func(name string, kind protocol.CompletionItemKind, detail string) {
		item := protocol.CompletionItem{Label: prefix + name, Kind: &kind}
		if detail != "" {
			item.Detail = &detail
		}
		out = append(out, item)
	}

	for _, it := range items {
		switch n := it.Item.(type) {
		case syntax.ModuleItem:
			add(n.Name.Item, protocol.CompletionItemKindModule, "")
			if n.Inline {
				out = append(out, itemCompletions(n.Items, prefix+n.Name.Item+"::")...)
			}
		case syntax.FunctionItem:
			add(n.Name.Item, protocol.CompletionItemKindFunction, signature(n))
		case syntax.TypeAliasItem:
			add(n.Name.Item, protocol.CompletionItemKindTypeParameter, fmt.Sprint(n.Type))
		case syntax.StructItem:
			add(n.Name.Item, protocol.CompletionItemKindStruct, "struct")
		case syntax.EnumItem:
			add(n.Name.Item, protocol.CompletionItemKindEnum, "enum")
			for _, v := range n.Variants {
				add(n.Name.Item+"::"+v.Name.Item, protocol.CompletionItemKindEnumMember, "")
			}
		case syntax.ConstItem:
			add(n.Name.Item, protocol.CompletionItemKindConstant, fmt.Sprint(n.Type))
		case syntax.StaticItem:
			add(n.Name.Item, protocol.CompletionItemKindVariable, fmt.Sprint(n.Type))
		}
	}
	return out
}
