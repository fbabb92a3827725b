package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/pkg/lexer"
	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

type lexeme struct {
	kind syntax.Kind
	text string
}

func lex(input string) []lexeme {
	tokens := lexer.Tokenize(input)
	out := make([]lexeme, 0, len(tokens))
	offset := 0
	for _, tok := range tokens {
		out = append(out, lexeme{kind: tok.Kind, text: input[offset : offset+tok.Len]})
		offset += tok.Len
	}
	return out
}

func kinds(input string) []syntax.Kind {
	lexemes := lex(input)
	out := make([]syntax.Kind, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.kind
	}
	return out
}

func TestTokenizeSequences(t *testing.T) {
	t.Parallel()

	const (
		ws   = syntax.Whitespace
		nl   = syntax.Newline
		text = syntax.Text
	)

	tests := []struct {
		name  string
		input string
		want  []syntax.Kind
	}{
		{
			name:  "block math with label",
			input: "$$\nf(x)=x^2\n$$ {#eq:foobar}\n",
			want: []syntax.Kind{
				syntax.BlockMathMarker, nl, text, nl,
				syntax.BlockMathMarker, ws, syntax.Attribute, nl,
			},
		},
		{
			name:  "inline math",
			input: "This is $x^2$ inline math.",
			want: []syntax.Kind{
				text, ws, text, ws,
				syntax.InlineMathMarker, text, syntax.InlineMathMarker,
				ws, text, ws, text,
			},
		},
		{
			name:  "code span hides math",
			input: "foo `bar $baz$` qux",
			want:  []syntax.Kind{text, ws, syntax.CodeSpan, ws, text},
		},
		{
			name:  "mid-line dash is text",
			input: "foo - bar\n- item\n",
			want: []syntax.Kind{
				text, ws, text, ws, text, nl,
				syntax.ListMarker, ws, text, nl,
			},
		},
		{
			name:  "heading hashes are text",
			input: "## A level-two heading",
			want:  []syntax.Kind{text, ws, text, ws, text, ws, text},
		},
		{
			name:  "long dash run is text",
			input: "-----\n",
			want:  []syntax.Kind{text, nl},
		},
		{
			name:  "ordered marker",
			input: "12. Twelve\n",
			want:  []syntax.Kind{syntax.ListMarker, ws, text, nl},
		},
		{
			name:  "star bullet",
			input: "* item\n",
			want:  []syntax.Kind{syntax.ListMarker, ws, text, nl},
		},
		{
			name:  "currency is text",
			input: "costs $5 or $10.50",
			want:  []syntax.Kind{text, ws, text, ws, text, ws, text},
		},
		{
			name:  "escaped dollar",
			input: `\$x`,
			want:  []syntax.Kind{text, text},
		},
		{
			name:  "comment markers",
			input: "<!-- note -->",
			want:  []syntax.Kind{syntax.CommentStart, ws, text, ws, syntax.CommentEnd},
		},
		{
			name:  "attribute after text",
			input: "word{.class}",
			want:  []syntax.Kind{text, syntax.Attribute},
		},
		{
			name:  "unclosed brace is text",
			input: "a {b\n",
			want:  []syntax.Kind{text, ws, text, nl},
		},
		{
			name:  "link and image",
			input: "see [a link](http://x.org) and ![img](a.png){width=50%}",
			want: []syntax.Kind{
				text, ws, syntax.Link, ws, text, ws, syntax.ImageLink, syntax.Attribute,
			},
		},
		{
			name:  "unclosed link",
			input: "[not a link] here",
			want:  []syntax.Kind{syntax.LinkStart, text, ws, text, ws, text, ws, text},
		},
		{
			name:  "latex command",
			input: `\includegraphics[width=0.5\textwidth]{figure.png}`,
			want:  []syntax.Kind{syntax.LatexCommand},
		},
		{
			name:  "latex environment",
			input: "\\begin{matrix}\nA\n\\end{matrix}\n",
			want:  []syntax.Kind{syntax.LatexEnvBegin, nl, text, nl, syntax.LatexEnvEnd, nl},
		},
		{
			name:  "inline footnote",
			input: "a^[note [x] here] b",
			want: []syntax.Kind{
				text, syntax.InlineFootnoteStart, text, ws,
				syntax.LinkStart, text, text, ws, text,
				syntax.InlineFootnoteEnd, ws, text,
			},
		},
		{
			name:  "nested quote markers",
			input: "> Outer\n>\n> > Inner",
			want: []syntax.Kind{
				syntax.BlockQuoteMarker, ws, text, nl,
				syntax.BlockQuoteMarker, nl,
				syntax.BlockQuoteMarker, ws, syntax.BlockQuoteMarker, ws, text,
			},
		},
		{
			name:  "quote needs blank line before",
			input: "Regular paragraph\n> not quote",
			want:  []syntax.Kind{text, ws, text, nl, text, ws, text, ws, text},
		},
		{
			name:  "quote after blank line",
			input: "Para\n\n> quote",
			want:  []syntax.Kind{text, nl, nl, syntax.BlockQuoteMarker, ws, text},
		},
		{
			name:  "indented four spaces is not a quote",
			input: "    > code",
			want:  []syntax.Kind{ws, text, ws, text},
		},
		{
			name:  "div fences",
			input: "::: {.note}\nHi\n:::\n",
			want: []syntax.Kind{
				syntax.DivMarker, ws, syntax.Attribute, nl,
				text, nl,
				syntax.DivMarker, nl,
			},
		},
		{
			name:  "tilde fence",
			input: "~~~\n$x$\n~~~\n",
			want:  []syntax.Kind{syntax.CodeFenceMarker, nl, text, nl, syntax.CodeFenceMarker, nl},
		},
		{
			name:  "dash run before comment end",
			input: "x --->",
			want:  []syntax.Kind{text, ws, text, syntax.CommentEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, kinds(tt.input))
		})
	}
}

func TestTokenizeCodeFenceContentIsRaw(t *testing.T) {
	t.Parallel()

	input := "```{r}\nx <- `a` + $b$ [c](d)\n````\n```\nafter\n"
	got := lex(input)

	want := []lexeme{
		{syntax.CodeFenceMarker, "```"},
		{syntax.Attribute, "{r}"},
		{syntax.Newline, "\n"},
		{syntax.Text, "x <- `a` + $b$ [c](d)"},
		{syntax.Newline, "\n"},
		{syntax.CodeFenceMarker, "````"},
		{syntax.Newline, "\n"},
		{syntax.CodeFenceMarker, "```"},
		{syntax.Newline, "\n"},
		{syntax.Text, "after"},
		{syntax.Newline, "\n"},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeLongerFenceIsNotClosedByShorter(t *testing.T) {
	t.Parallel()

	got := lex("````\n```\n````\n")

	require.Len(t, got, 6)
	assert.Equal(t, lexeme{syntax.Text, "```"}, got[2])
	assert.Equal(t, lexeme{syntax.CodeFenceMarker, "````"}, got[4])
}

func TestTokenizeFrontmatter(t *testing.T) {
	t.Parallel()

	got := lex("---\ntitle: `x`\n---\n\n> quote\n")

	want := []lexeme{
		{syntax.FrontmatterDelim, "---"},
		{syntax.Newline, "\n"},
		{syntax.Text, "title: `x`"},
		{syntax.Newline, "\n"},
		{syntax.FrontmatterDelim, "---"},
		{syntax.Newline, "\n"},
		{syntax.Newline, "\n"},
		{syntax.BlockQuoteMarker, ">"},
		{syntax.Whitespace, " "},
		{syntax.Text, "quote"},
		{syntax.Newline, "\n"},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeSetextUnderline(t *testing.T) {
	t.Parallel()

	got := lex("Title\n---\n")

	require.Len(t, got, 4)
	assert.Equal(t, lexeme{syntax.FrontmatterDelim, "---"}, got[2])
}

func TestTokenizeCRLF(t *testing.T) {
	t.Parallel()

	got := lex("a\r\nb\r\n")

	want := []lexeme{
		{syntax.Text, "a"},
		{syntax.Newline, "\r\n"},
		{syntax.Text, "b"},
		{syntax.Newline, "\r\n"},
	}
	assert.Equal(t, want, got)
}

func TestTokenizeMultilineCodeSpan(t *testing.T) {
	t.Parallel()

	got := lex("a `b\nc` d")
	require.Len(t, got, 5)
	assert.Equal(t, lexeme{syntax.CodeSpan, "`b\nc`"}, got[2])

	// A blank line ends the search.
	got = lex("a `b\n\nc` d")
	assert.Equal(t, lexeme{syntax.Text, "`"}, got[2])
}

func TestTokenizePartitionsInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\\",
		"`",
		"$",
		"]]]",
		"^[",
		"[[[](",
		"\r",
		"a\rb",
		"héllo wörld ✓",
		"\\é",
		"---",
		"+++\nx\n",
		"```\nunterminated",
		"> > >\n>>\n",
		"<!--",
		"{{{}}",
		"\\begin{",
		"1.\n2. x\n",
		"\t- tab\n",
		"![",
		"-->--><!--",
	}

	for _, input := range inputs {
		tokens := lexer.Tokenize(input)
		assert.Equal(t, len(input), syntax.TotalLen(tokens), "input %q", input)
		for _, tok := range tokens {
			if tok.Len <= 0 {
				t.Errorf("input %q produced empty token %v", input, tok.Kind)
			}
		}
	}
}
