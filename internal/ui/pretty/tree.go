package pretty

import (
	"strings"
)

// FormatTree colors a syntax tree dump. Each line has the shape
// `KIND@start..end` optionally followed by a quoted token text.
func (s *Styles) FormatTree(dump string) string {
	var sb strings.Builder
	for line := range strings.Lines(dump) {
		line = strings.TrimSuffix(line, "\n")
		body := strings.TrimLeft(line, " ")
		sb.WriteString(line[:len(line)-len(body)])

		head, text, hasText := strings.Cut(body, " ")
		kind, span, ok := strings.Cut(head, "@")
		if !ok {
			sb.WriteString(body)
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(s.TreeKind.Render(kind))
		sb.WriteString(s.TreeRange.Render("@" + span))
		if hasText {
			sb.WriteString(" ")
			sb.WriteString(s.TreeText.Render(text))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
