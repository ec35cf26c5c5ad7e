package position

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Source keeps the lines of a piece of source text for highlighting.
type Source struct {
	Name  string
	Lines []string
}

// NewSource splits text into lines
func NewSource(name, text string) *Source {
	return &Source{Name: name, Lines: strings.Split(text, "\n")}
}

// Line returns the 1-based line, or "" when out of range
func (src *Source) Line(n int) string {
	if n < 1 || n > len(src.Lines) {
		return ""
	}
	return src.Lines[n-1]
}

// Highlight renders the lines covered by span with a caret underline.
//
//	   1 | (1 + 2
//	     |       ^
func (src *Source) Highlight(span Span) string {
	if !span.IsValid() {
		return ""
	}

	var result strings.Builder
	if src.Name != "" {
		result.WriteString(fmt.Sprintf("--> %s:%s\n", src.Name, span.Start()))
	}

	last := min(span.LastLine, len(src.Lines))
	// A span that ends at column 1 of the next line covers nothing there.
	if span.LastLine > span.FirstLine && span.LastColumn == 1 {
		last = min(span.LastLine-1, len(src.Lines))
	}
	for lineNum := span.FirstLine; lineNum <= max(last, span.FirstLine); lineNum++ {
		line := src.Line(lineNum)
		result.WriteString(fmt.Sprintf("%4d | %s\n", lineNum, line))
		result.WriteString("     | ")

		startCol, endCol := 1, utf8.RuneCountInString(line)+1
		if lineNum == span.FirstLine {
			startCol = span.FirstColumn
		}
		if lineNum == span.LastLine {
			endCol = span.LastColumn
		}
		addSingleLineHighlight(&result, line, startCol, endCol)
		result.WriteString("\n")
	}

	return result.String()
}

// addSingleLineHighlight underlines line between the given columns. Padding
// and carets follow the terminal width of each rune, so wide characters
// stay aligned. An empty range still gets a single caret so end-of-input
// positions stay visible.
func addSingleLineHighlight(result *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)

	for i := 1; i < startCol; i++ {
		switch {
		case i > len(runes):
			result.WriteString(" ")
		case runes[i-1] == '\t':
			result.WriteString("\t")
		default:
			result.WriteString(strings.Repeat(" ", runewidth.RuneWidth(runes[i-1])))
		}
	}

	carets := 0
	for i := startCol; i < endCol; i++ {
		if i >= 1 && i <= len(runes) {
			carets += max(runewidth.RuneWidth(runes[i-1]), 1)
		} else {
			carets++
		}
	}
	result.WriteString(strings.Repeat("^", max(carets, 1)))
}
