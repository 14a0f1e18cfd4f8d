package span

import "testing"

func TestBetween(t *testing.T) {
	tests := []struct {
		a, b     Span
		expected Span
	}{
		{New(0, 1), New(4, 5), New(0, 5)},
		{New(3, 3), New(3, 4), New(3, 4)},
		{New(2, 7), New(2, 7), New(2, 7)},
	}

	for i, tt := range tests {
		if got := Between(tt.a, tt.b); got != tt.expected {
			t.Fatalf("tests[%d] - span wrong. expected=%v, got=%v", i, tt.expected, got)
		}
	}
}

func TestSpannedString(t *testing.T) {
	s := Wrap("foo", New(0, 3))
	if s.String() != "foo" {
		t.Fatalf("expected %q, got %q", "foo", s.String())
	}
	if s.Span.Len() != 3 {
		t.Fatalf("expected length 3, got %d", s.Span.Len())
	}
	if !s.Span.Contains(2) || s.Span.Contains(3) {
		t.Fatalf("span %v containment wrong", s.Span)
	}
}
