// Package stream provides a cursor over positioned values that never runs
// out: once the real elements are exhausted it keeps returning a sentinel.
package stream

import "github.com/opal-lang/opalc/internal/span"

// Stream is a forward-only cursor over positioned values.
//
// Looking past the last element yields the sentinel end value together with a
// span placed immediately after the last real element, so lookahead code never
// has to special-case exhaustion.
type Stream[T comparable] struct {
	items   []span.Spanned[T]
	pos     int
	end     T
	endSpan span.Span
}

// New returns a stream over items terminated by end.
func New[T comparable](items []span.Spanned[T], end T) *Stream[T] {
	s := &Stream[T]{items: items, end: end}
	switch {
	case len(items) == 0:
		s.endSpan = span.New(0, 1)
	case items[len(items)-1].Item == end:
		s.endSpan = items[len(items)-1].Span
	default:
		stop := items[len(items)-1].Span.Stop
		s.endSpan = span.New(stop, stop+1)
	}
	return s
}

// FromString splits source into runes, giving the i-th rune the span
// [i, i+1). NUL is the sentinel value returned past the end; a NUL in source
// is still an ordinary element, so callers detect the end with Len.
func FromString(source string) *Stream[rune] {
	runes := []rune(source)
	items := make([]span.Spanned[rune], len(runes))
	for i, r := range runes {
		items[i] = span.Wrap(r, span.New(i, i+1))
	}
	return New(items, rune(0))
}

// Peek returns the current element without consuming it.
func (s *Stream[T]) Peek() T {
	if s.pos >= len(s.items) {
		return s.end
	}
	return s.items[s.pos].Item
}

// PeekSpan returns the span of the current element.
func (s *Stream[T]) PeekSpan() span.Span {
	if s.pos >= len(s.items) {
		return s.endSpan
	}
	return s.items[s.pos].Span
}

// PeekSpanned returns the current element along with its span.
func (s *Stream[T]) PeekSpanned() span.Spanned[T] {
	if s.pos >= len(s.items) {
		return span.Wrap(s.end, s.endSpan)
	}
	return s.items[s.pos]
}

// Pop consumes and returns the current element. At the end of the stream it
// returns the sentinel and leaves the cursor where it is.
func (s *Stream[T]) Pop() span.Spanned[T] {
	item := s.PeekSpanned()
	if s.pos < len(s.items) {
		s.pos++
	}
	return item
}

// Len reports how many elements remain to be popped.
func (s *Stream[T]) Len() int {
	return len(s.items) - s.pos
}

// EndSpan is the span reported for the sentinel.
func (s *Stream[T]) EndSpan() span.Span {
	return s.endSpan
}
