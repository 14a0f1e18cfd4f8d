package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Formatter renders errors in a Rust-style format with a source snippet.
type Formatter struct {
	w io.Writer

	header lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
	note   lipgloss.Style
}

// NewFormatter returns a formatter writing to w. Colors are only emitted
// when w is a terminal that supports them.
func NewFormatter(w io.Writer) *Formatter {
	r := lipgloss.NewRenderer(w)
	return &Formatter{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		gutter: r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		note:   r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Format writes err, pointing into src.
func (f *Formatter) Format(src *Source, err *Error) {
	f.printHeader(err)

	pos := src.Position(err.Span.Start)
	lineNumWidth := len(fmt.Sprintf("%d", pos.Line))
	pad := strings.Repeat(" ", lineNumWidth)

	name := src.Name
	if name == "" {
		name = "<input>"
	}
	fmt.Fprintf(f.w, "%s %s:%d:%d\n", f.gutter.Render(pad+"-->"), name, pos.Line, pos.Column)
	fmt.Fprintf(f.w, "%s\n", f.gutter.Render(pad+" |"))

	lineContent := src.Line(pos.Line)
	fmt.Fprintf(f.w, "%s %s\n", f.gutter.Render(fmt.Sprintf("%*d |", lineNumWidth, pos.Line)), lineContent)
	f.printUnderline(pad, lineContent, pos.Column, err.Span.Len())
	fmt.Fprintf(f.w, "%s\n", f.gutter.Render(pad+" |"))

	if err.Details != "" {
		fmt.Fprintf(f.w, "%s %s\n", f.gutter.Render(pad+" ="), f.note.Render("note: "+err.Details))
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(err *Error) {
	if err.Code != "" {
		fmt.Fprintf(f.w, "%s: %s\n", f.header.Render(fmt.Sprintf("error[%s]", err.Code)), err.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", f.header.Render("error"), err.Message)
	}
}

// printUnderline marks the span on its first line. Spans running past the
// end of the line are cut off there; empty spans still get one caret.
func (f *Formatter) printUnderline(pad, lineContent string, column, width int) {
	lineLen := len([]rune(lineContent))
	start := column - 1
	width = max(1, min(width, lineLen-start))
	fmt.Fprintf(f.w, "%s %s%s\n",
		f.gutter.Render(pad+" |"),
		strings.Repeat(" ", start),
		f.caret.Render(strings.Repeat("^", width)))
}
