// Package position provides source span tracking for DumbBrain tokens
// and the diagnostics that point at them.
package position

import (
	"fmt"
)

// Span is the line/column extent of a token. All fields are 1-based; the
// last line/column pair is exclusive and names the position right after the
// token's final character.
type Span struct {
	FirstLine   int
	FirstColumn int
	LastLine    int
	LastColumn  int
}

// IsValid returns true if the span has 1-based coordinates in order
func (s Span) IsValid() bool {
	if s.FirstLine <= 0 || s.FirstColumn <= 0 || s.LastLine <= 0 || s.LastColumn <= 0 {
		return false
	}
	if s.FirstLine == s.LastLine {
		return s.FirstColumn <= s.LastColumn
	}
	return s.FirstLine < s.LastLine
}

// Start returns the "line:column" form of the first position
func (s Span) Start() string {
	return fmt.Sprintf("%d:%d", s.FirstLine, s.FirstColumn)
}

// String returns a string representation of the span
func (s Span) String() string {
	if s.FirstLine == s.LastLine {
		return fmt.Sprintf("%d:%d-%d", s.FirstLine, s.FirstColumn, s.LastColumn)
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.FirstLine, s.FirstColumn, s.LastLine, s.LastColumn)
}

// Union returns a span that covers both s and other
func (s Span) Union(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}

	out := s
	if other.FirstLine < out.FirstLine || (other.FirstLine == out.FirstLine && other.FirstColumn < out.FirstColumn) {
		out.FirstLine, out.FirstColumn = other.FirstLine, other.FirstColumn
	}
	if other.LastLine > out.LastLine || (other.LastLine == out.LastLine && other.LastColumn > out.LastColumn) {
		out.LastLine, out.LastColumn = other.LastLine, other.LastColumn
	}
	return out
}

// Point returns an empty span located at line:column.
func Point(line, column int) Span {
	return Span{FirstLine: line, FirstColumn: column, LastLine: line, LastColumn: column}
}
