package parser

import (
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

// tabWidth is the column width of a tab in indentation.
const tabWidth = 4

// Stream is a read-only view over a token sequence and the text it was lexed
// from. Indices refer to tokens; an index equal to Len is end of input.
type Stream struct {
	input  string
	tokens []syntax.Token
	starts []int
}

// NewStream indexes tokens against input.
func NewStream(input string, tokens []syntax.Token) *Stream {
	starts := make([]int, len(tokens)+1)
	offset := 0
	for i, tok := range tokens {
		starts[i] = offset
		offset += tok.Len
	}
	starts[len(tokens)] = offset

	return &Stream{input: input, tokens: tokens, starts: starts}
}

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.tokens) }

// Kind returns the kind of token i. ok is false at end of input.
func (s *Stream) Kind(i int) (syntax.Kind, bool) {
	if i < 0 || i >= len(s.tokens) {
		return 0, false
	}
	return s.tokens[i].Kind, true
}

// Is reports whether token i exists and has the given kind.
func (s *Stream) Is(i int, kind syntax.Kind) bool {
	k, ok := s.Kind(i)
	return ok && k == kind
}

// Text returns the source text of token i.
func (s *Stream) Text(i int) string {
	if i < 0 || i >= len(s.tokens) {
		return ""
	}
	return s.input[s.starts[i]:s.starts[i+1]]
}

// Offset returns the byte offset at which token i starts.
func (s *Stream) Offset(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(s.tokens) {
		return s.starts[len(s.tokens)]
	}
	return s.starts[i]
}

// SkipSpace returns the index of the first non-whitespace token at or after i.
func (s *Stream) SkipSpace(i int) int {
	for s.Is(i, syntax.Whitespace) {
		i++
	}
	return i
}

// LineEnd returns the index of the newline token terminating the line that
// contains i, or Len when the line runs to end of input.
func (s *Stream) LineEnd(i int) int {
	for i < len(s.tokens) && s.tokens[i].Kind != syntax.Newline {
		i++
	}
	return i
}

// NextLine returns the index of the first token on the line after i.
func (s *Stream) NextLine(i int) int {
	end := s.LineEnd(i)
	if end < len(s.tokens) {
		return end + 1
	}
	return end
}

// IsBlankLine reports whether the line starting at i holds only whitespace.
func (s *Stream) IsBlankLine(i int) bool {
	j := s.SkipSpace(i)
	return j >= len(s.tokens) || s.tokens[j].Kind == syntax.Newline
}

// Indent returns the indentation width, in columns, of the line starting at
// i.
func (s *Stream) Indent(i int) int {
	if !s.Is(i, syntax.Whitespace) {
		return 0
	}
	cols := 0
	for _, r := range s.Text(i) {
		switch r {
		case '\t':
			cols += tabWidth
		case ' ':
			cols++
		}
	}
	return cols
}

// RestIsSpace reports whether tokens from i to the end of the line are all
// whitespace.
func (s *Stream) RestIsSpace(i int) bool {
	return s.SkipSpace(i) == s.LineEnd(i)
}

// isRun reports whether text is a non-empty run of c.
func isRun(text string, c byte) bool {
	return text != "" && strings.Trim(text, string(c)) == ""
}

// tokenRange converts tokens [from, to) into leaf nodes.
func (s *Stream) tokenRange(from, to int) []*syntax.Node {
	if to > len(s.tokens) {
		to = len(s.tokens)
	}
	if from >= to {
		return nil
	}
	out := make([]*syntax.Node, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, syntax.NewToken(s.tokens[i].Kind, s.Text(i)))
	}
	return out
}
