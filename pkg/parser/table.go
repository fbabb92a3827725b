package parser

import "github.com/yaklabco/qmdfmt/pkg/syntax"

// maxTableRows bounds the lookahead used to find the closing rule of a
// headerless table.
const maxTableRows = 64

// minRuleDashes is the fewest dashes a table rule line may contain.
const minRuleDashes = 3

// IsHeaderedTable reports whether the line at i begins a simple table with a
// header row: a text line, a dashed rule line, then at least one body line.
func IsHeaderedTable(s *Stream, i int) bool {
	if !isHeaderLine(s, i) {
		return false
	}
	rule := s.NextLine(i)
	if rule >= s.Len() || !isDashLine(s, rule) {
		return false
	}
	body := s.NextLine(rule)
	return body < s.Len() && isRowLine(s, body)
}

// IsHeaderlessTable reports whether the line at i begins a simple table
// without a header: a dashed rule line, one or more body lines, then a closing
// dashed rule line before any blank line.
func IsHeaderlessTable(s *Stream, i int) bool {
	if !isDashLine(s, i) {
		return false
	}

	line := s.NextLine(i)
	rows := 0
	for rows <= maxTableRows && line < s.Len() {
		switch {
		case s.IsBlankLine(line):
			return false
		case isDashLine(s, line):
			return rows > 0
		case !isRowLine(s, line):
			return false
		}
		rows++
		line = s.NextLine(line)
	}
	return false
}

// isDashLine reports whether the line at i consists solely of dash runs
// separated by whitespace.
func isDashLine(s *Stream, i int) bool {
	end := s.LineEnd(i)
	dashes := 0

	for j := i; j < end; j++ {
		kind, _ := s.Kind(j)
		text := s.Text(j)
		switch {
		case kind == syntax.Whitespace:
		case kind == syntax.Text && isRun(text, '-'):
			dashes += len(text)
		case kind == syntax.FrontmatterDelim && text == "---":
			dashes += len(text)
		default:
			return false
		}
	}
	return dashes >= minRuleDashes
}

// isRowLine reports whether the line at i is a non-blank line of plain text
// and whitespace.
func isRowLine(s *Stream, i int) bool {
	if s.IsBlankLine(i) {
		return false
	}
	end := s.LineEnd(i)
	for j := i; j < end; j++ {
		kind, _ := s.Kind(j)
		if kind != syntax.Text && kind != syntax.Whitespace {
			return false
		}
	}
	return true
}

// isHeaderLine reports whether the line at i is a row line carrying at least
// one word that is not a dash run.
func isHeaderLine(s *Stream, i int) bool {
	if !isRowLine(s, i) {
		return false
	}
	end := s.LineEnd(i)
	for j := i; j < end; j++ {
		if s.Is(j, syntax.Text) && !isRun(s.Text(j), '-') {
			return true
		}
	}
	return false
}
