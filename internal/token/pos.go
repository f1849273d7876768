// Package token holds source positions attached to AST nodes by the front-end.
package token

import "fmt"

// Pos is a 1-based line/column location. The zero Pos is "no position".
type Pos struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func NewPosition(filename string, line, column int) Pos {
	return Pos{Filename: filename, Line: line, Column: column}
}

func (pos Pos) IsValid() bool { return pos.Line > 0 }

func (pos Pos) String() string {
	if pos.Filename == "" {
		return fmt.Sprintf("[%d:%d]", pos.Line, pos.Column)
	}
	return fmt.Sprintf("[%s:%d:%d]", pos.Filename, pos.Line, pos.Column)
}

// Span covers the tokens from Start up to End (inclusive).
type Span struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

func (span Span) IsValid() bool { return span.Start.IsValid() }

func (span Span) String() string {
	return fmt.Sprintf("%s-%s", span.Start, span.End)
}
