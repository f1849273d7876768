package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	colorRed    = "\x1b[31;1m"
	colorYellow = "\x1b[33;1m"
	colorReset  = "\x1b[0m"
)

// Printer renders diagnostics for humans. When the source text is known and
// the node carries a span, the offending line is printed with a caret under
// the span.
type Printer struct {
	w     io.Writer
	lines []string
	color bool
}

// NewPrinter writes to w. source may be nil.
func NewPrinter(w io.Writer, source []byte) *Printer {
	var lines []string
	if source != nil {
		lines = strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
	}
	return &Printer{
		w:     w,
		lines: lines,
		color: os.Getenv("NO_COLOR") == "" && isTerminal(w),
	}
}

func (p *Printer) Print(diag Diag) {
	level := diag.Level.String()
	if p.color {
		c := colorRed
		if diag.Level == WARNING {
			c = colorYellow
		}
		level = c + level + colorReset
	}

	if diag.Node == nil || !diag.Node.Span().IsValid() {
		fmt.Fprintf(p.w, "%s[%s]: %s\n", level, diag.Kind, diag.Message)
		return
	}

	span := diag.Node.Span()
	fmt.Fprintf(p.w, "%s[%s] %s: %s\n", level, diag.Kind, span.Start, diag.Message)

	line := span.Start.Line
	if line > len(p.lines) {
		return
	}
	text := p.lines[line-1]
	gutter := fmt.Sprintf("%d", line)
	fmt.Fprintf(p.w, " %s | %s\n", gutter, text)
	fmt.Fprintf(p.w, " %s | %s\n", strings.Repeat(" ", len(gutter)), caret(text, span.Start.Column, span.End.Line == line, span.End.Column))
}

// caret underlines columns [from, to] of text (1-based, inclusive). A span
// that continues on another line is underlined to the end of text.
func caret(text string, from int, sameLine bool, to int) string {
	width := len([]rune(text))
	if from < 1 {
		from = 1
	}
	if !sameLine || to > width {
		to = width
	}
	if to < from {
		to = from
	}
	return strings.Repeat(" ", from-1) + strings.Repeat("^", to-from+1)
}
