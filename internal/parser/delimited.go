package parser

import (
	"github.com/opal-lang/opalc/internal/span"
	"github.com/opal-lang/opalc/internal/token"
)

type delimitedConfig struct {
	Closing token.Basic
	// Context completes the error raised when an element is followed by
	// neither a comma nor Closing, e.g. "to close the argument list".
	Context string
}

// parseDelimited parses comma separated elements up to and including the
// closing token; the opening token has already been consumed. A trailing
// comma is accepted and an empty list is allowed. It returns the span of the
// closing token.
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func() (T, error)) ([]T, span.Span, error) {
	var items []T
	for {
		if closing, ok := p.tokens.AcceptBasic(cfg.Closing); ok {
			return items, closing, nil
		}

		item, err := parseItem()
		if err != nil {
			return nil, span.Span{}, err
		}
		items = append(items, item)

		if _, ok := p.tokens.AcceptBasic(token.COMMA); ok {
			continue
		}
		closing, err := p.tokens.ExpectBasic(cfg.Closing, cfg.Context)
		if err != nil {
			return nil, span.Span{}, err
		}
		return items, closing, nil
	}
}
