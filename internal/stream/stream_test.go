package stream

import (
	"testing"

	"github.com/opal-lang/opalc/internal/span"
)

func TestFromStringSpans(t *testing.T) {
	s := FromString("ab€")

	tests := []struct {
		expectedItem rune
		expectedSpan span.Span
	}{
		{'a', span.New(0, 1)},
		{'b', span.New(1, 2)},
		{'€', span.New(2, 3)},
		{0, span.New(3, 4)},
		{0, span.New(3, 4)},
	}

	for i, tt := range tests {
		if got := s.PeekSpan(); got != tt.expectedSpan {
			t.Fatalf("tests[%d] - peek span wrong. expected=%v, got=%v", i, tt.expectedSpan, got)
		}
		got := s.Pop()
		if got.Item != tt.expectedItem {
			t.Fatalf("tests[%d] - item wrong. expected=%q, got=%q", i, tt.expectedItem, got.Item)
		}
		if got.Span != tt.expectedSpan {
			t.Fatalf("tests[%d] - span wrong. expected=%v, got=%v", i, tt.expectedSpan, got.Span)
		}
	}
}

func TestFromStringKeepsNUL(t *testing.T) {
	s := FromString("a\x00b")

	if s.Len() != 3 {
		t.Fatalf("expected len 3, got %d", s.Len())
	}
	s.Pop()
	if got := s.Pop(); got.Item != 0 || got.Span != span.New(1, 2) {
		t.Fatalf("expected NUL at 1..2, got %q at %v", got.Item, got.Span)
	}
	if s.Len() != 1 || s.Peek() != 'b' {
		t.Fatalf("expected b to follow the NUL, got %q with len %d", s.Peek(), s.Len())
	}
}

func TestPopIsIdempotentAtEnd(t *testing.T) {
	s := FromString("x")
	s.Pop()

	for i := 0; i < 3; i++ {
		if s.Len() != 0 {
			t.Fatalf("expected empty stream, got len %d", s.Len())
		}
		if got := s.Pop(); got.Item != 0 || got.Span != span.New(1, 2) {
			t.Fatalf("pop %d past end returned %v at %v", i, got.Item, got.Span)
		}
	}
}

func TestEmptyStreamEndSpan(t *testing.T) {
	s := FromString("")
	if s.Peek() != 0 {
		t.Fatalf("expected sentinel, got %q", s.Peek())
	}
	if s.EndSpan() != span.New(0, 1) {
		t.Fatalf("expected end span 0..1, got %v", s.EndSpan())
	}
}

func TestStoredSentinelKeepsItsSpan(t *testing.T) {
	items := []span.Spanned[int]{
		span.Wrap(7, span.New(0, 1)),
		span.Wrap(-1, span.New(4, 5)),
	}
	s := New(items, -1)

	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
	s.Pop()
	s.Pop()
	if got := s.PeekSpanned(); got.Item != -1 || got.Span != span.New(4, 5) {
		t.Fatalf("unexpected end element %v at %v", got.Item, got.Span)
	}
}
