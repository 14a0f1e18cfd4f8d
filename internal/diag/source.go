package diag

import (
	"sort"
	"unicode/utf16"
)

// Position is a 1-based line and column, both counted in runes.
type Position struct {
	Line   int
	Column int
}

// Source indexes a source text by line so rune offsets from spans can be
// turned back into human coordinates.
type Source struct {
	Name       string
	runes      []rune
	lineStarts []int
}

// NewSource indexes text.
func NewSource(name, text string) *Source {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{Name: name, runes: runes, lineStarts: starts}
}

// Text returns the indexed text.
func (s *Source) Text() string {
	return string(s.runes)
}

// LineCount reports the number of lines, counting a trailing empty line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Position maps a rune offset to its line and column. Offsets past the end
// land just after the last character.
func (s *Source) Position(offset int) Position {
	offset = max(0, min(offset, len(s.runes)))
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Position{Line: line + 1, Column: offset - s.lineStarts[line] + 1}
}

// Line returns the text of the 1-based line n without its newline.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[n-1]
	stop := len(s.runes)
	if n < len(s.lineStarts) {
		stop = s.lineStarts[n] - 1
	}
	return string(s.runes[start:stop])
}

// UTF16Position maps a rune offset to a 0-based line and a 0-based column
// counted in UTF-16 code units, which is what editors speak.
func (s *Source) UTF16Position(offset int) (line, character int) {
	pos := s.Position(offset)
	start := s.lineStarts[pos.Line-1]
	for _, r := range s.runes[start : start+pos.Column-1] {
		character += utf16.RuneLen(r)
	}
	return pos.Line - 1, character
}

// UTF16Offset is the inverse of UTF16Position. Characters past the end of the
// line clamp to its end and lines past the end of the text clamp to the end
// of the text.
func (s *Source) UTF16Offset(line, character int) int {
	if line < 0 {
		return 0
	}
	if line >= len(s.lineStarts) {
		return len(s.runes)
	}
	offset := s.lineStarts[line]
	end := len(s.runes)
	if line+1 < len(s.lineStarts) {
		end = s.lineStarts[line+1] - 1
	}
	for offset < end && character > 0 {
		character -= utf16.RuneLen(s.runes[offset])
		offset++
	}
	return offset
}
