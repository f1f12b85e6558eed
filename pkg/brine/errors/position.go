package errors

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Position converts a byte offset into a 1-based line and column.
// Columns count runes, not bytes. Offsets past the end clamp to the end.
func Position(src string, offset int) (line, column int) {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, column
}

// Snippet quotes the source line containing offset and underlines the
// range [offset, end) with carets. Ranges spanning several lines are cut at
// the end of the first one.
func Snippet(src string, offset, end int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	lineEnd := strings.IndexByte(src[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(src)
	} else {
		lineEnd += offset
	}
	if end > lineEnd {
		end = lineEnd
	}
	text := strings.TrimRight(src[lineStart:lineEnd], "\r")

	var sb strings.Builder
	sb.WriteString("    ")
	sb.WriteString(text)
	sb.WriteString("\n    ")
	sb.WriteString(padding(src[lineStart:offset]))

	carets := displayWidth(src[offset:max(end, offset)])
	if carets == 0 {
		carets = 1
	}
	sb.WriteString(strings.Repeat("^", carets))
	return sb.String()
}

// padding returns whitespace occupying the same columns as prefix. Tabs are
// preserved so the caret lines up whatever the terminal's tab width.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runeWidth(r)))
	}
	return sb.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// runeWidth is the number of terminal cells r occupies.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	if r < ' ' {
		return 0
	}
	return 1
}
