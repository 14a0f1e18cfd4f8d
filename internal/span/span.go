package span

import "fmt"

// Span is a half-open range of rune offsets into the source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	Stop  int `json:"stop" yaml:"stop"`
}

// New returns the span [start, stop).
func New(start, stop int) Span {
	return Span{Start: start, Stop: stop}
}

// Between returns the span running from the start of a to the end of b.
func Between(a, b Span) Span {
	return Span{Start: a.Start, Stop: b.Stop}
}

// Len reports the number of runes covered by the span.
func (s Span) Len() int {
	return s.Stop - s.Start
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.Stop
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.Stop)
}

// Spanned pairs a value with the source range it was read from.
type Spanned[T any] struct {
	Item T    `json:"item" yaml:"item"`
	Span Span `json:"span" yaml:"span"`
}

// Wrap attaches a span to item.
func Wrap[T any](item T, s Span) Spanned[T] {
	return Spanned[T]{Item: item, Span: s}
}

func (s Spanned[T]) String() string {
	return fmt.Sprint(s.Item)
}
