package syntax_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/pkg/syntax"
)

func buildTestTree() *syntax.Node {
	// ROOT
	//   DOCUMENT
	//     Heading
	//       AtxHeadingMarker "#"
	//       WHITESPACE " "
	//       HeadingContent
	//         TEXT "Title"
	//       NEWLINE
	//     PARAGRAPH
	//       TEXT "hello"
	//       NEWLINE
	heading := syntax.NewNode(syntax.Heading,
		syntax.NewNode(syntax.AtxHeadingMarker, syntax.NewToken(syntax.Text, "#")),
		syntax.NewToken(syntax.Whitespace, " "),
		syntax.NewNode(syntax.HeadingContent, syntax.NewToken(syntax.Text, "Title")),
		syntax.NewToken(syntax.Newline, "\n"),
	)
	para := syntax.NewNode(syntax.Paragraph,
		syntax.NewToken(syntax.Text, "hello"),
		syntax.NewToken(syntax.Newline, "\n"),
	)

	return syntax.NewNode(syntax.Root, syntax.NewNode(syntax.Document, heading, para))
}

func TestNodeText(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	assert.Equal(t, "# Title\nhello\n", root.Text())
	assert.Equal(t, len("# Title\nhello\n"), root.Len())
}

func TestNodeNavigation(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	doc := root.FirstChild()
	require.NotNil(t, doc)
	assert.Equal(t, syntax.Document, doc.Kind())
	assert.Equal(t, root, doc.Parent())

	heading := doc.FirstChild()
	para := doc.LastChild()
	assert.Equal(t, para, heading.NextSibling())
	assert.Equal(t, heading, para.PrevSibling())
	assert.Nil(t, para.NextSibling())
	assert.Nil(t, heading.PrevSibling())
	assert.Equal(t, 1, para.Index())

	content := heading.FindChild(syntax.HeadingContent)
	require.NotNil(t, content)
	assert.Equal(t, "Title", content.Text())
	assert.Len(t, content.Ancestors(), 3)
}

func TestNodeDoubleAttachPanics(t *testing.T) {
	t.Parallel()

	tok := syntax.NewToken(syntax.Text, "x")
	_ = syntax.NewNode(syntax.Paragraph, tok)

	assert.Panics(t, func() {
		_ = syntax.NewNode(syntax.Paragraph, tok)
	})
}

func TestDepth(t *testing.T) {
	t.Parallel()

	inner := syntax.NewNode(syntax.Paragraph, syntax.NewToken(syntax.Text, "x"))
	quote := syntax.NewNode(syntax.BlockQuote,
		syntax.NewNode(syntax.BlockQuote, inner),
	)
	_ = syntax.NewNode(syntax.Document, quote)

	if got := inner.Depth(syntax.BlockQuote); got != 2 {
		t.Errorf("Depth() = %d, want 2", got)
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []syntax.Kind
	err := syntax.Walk(buildTestTree(), func(n *syntax.Node) error {
		visited = append(visited, n.Kind())
		if n.Kind() == syntax.Heading {
			return syntax.ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)

	expected := []syntax.Kind{
		syntax.Root,
		syntax.Document,
		syntax.Heading,
		syntax.Paragraph,
		syntax.Text,
		syntax.Newline,
	}
	assert.Equal(t, expected, visited)
}

func TestWalkStops(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	count := 0
	err := syntax.Walk(buildTestTree(), func(*syntax.Node) error {
		count++
		if count == 3 {
			return errStop
		}
		return nil
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)
}

func TestFindAllAndTokens(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	assert.Equal(t, 2, syntax.Count(root, syntax.Newline))
	assert.Len(t, syntax.FindAll(root, syntax.Paragraph), 1)

	var text string
	for _, tok := range syntax.Tokens(root) {
		text += tok.Text()
	}
	assert.Equal(t, root.Text(), text)
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := syntax.NewBuilder(syntax.Paragraph)
	b.Token(syntax.Text, "a").Token(syntax.Whitespace, "").Token(syntax.Newline, "\n")
	b.Node(nil)
	assert.Equal(t, 2, b.Len())

	n := b.Finish()
	assert.Equal(t, "a\n", n.Text())
	assert.Equal(t, 2, n.NumChildren())
}

func TestDump(t *testing.T) {
	t.Parallel()

	want := "ROOT@0..14\n" +
		"  DOCUMENT@0..14\n" +
		"    Heading@0..8\n" +
		"      AtxHeadingMarker@0..1\n" +
		"        TEXT@0..1 \"#\"\n" +
		"      WHITESPACE@1..2 \" \"\n" +
		"      HeadingContent@2..7\n" +
		"        TEXT@2..7 \"Title\"\n" +
		"      NEWLINE@7..8 \"\\n\"\n" +
		"    PARAGRAPH@8..14\n" +
		"      TEXT@8..13 \"hello\"\n" +
		"      NEWLINE@13..14 \"\\n\"\n"

	assert.Equal(t, want, syntax.Dump(buildTestTree()))
}

func TestOutline(t *testing.T) {
	t.Parallel()

	out := syntax.OutlineOf(buildTestTree(), func(n *syntax.Node, o *syntax.Outline) {
		if n.Kind() == syntax.Paragraph {
			o.Language = "prose"
		}
	})
	require.NotNil(t, out)
	assert.Equal(t, "ROOT", out.Kind)
	require.Len(t, out.Children, 1)

	para := out.Children[0].Children[1]
	assert.Equal(t, "PARAGRAPH", para.Kind)
	assert.Equal(t, 8, para.Start)
	assert.Equal(t, 14, para.End)
	assert.Equal(t, "prose", para.Language)
}

func TestSpans(t *testing.T) {
	t.Parallel()

	tokens := []syntax.Token{{Kind: syntax.Text, Len: 3}, {Kind: syntax.Whitespace, Len: 1}, {Kind: syntax.Text, Len: 2}}
	spans := syntax.Spans(tokens)

	assert.Equal(t, []syntax.Span{{Start: 0, End: 3}, {Start: 3, End: 4}, {Start: 4, End: 6}}, spans)
	assert.Equal(t, 6, syntax.TotalLen(tokens))
}

func TestKindClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  syntax.Kind
		token bool
		name  string
	}{
		{syntax.Text, true, "TEXT"},
		{syntax.InlineFootnoteEnd, true, "InlineFootnoteEnd"},
		{syntax.Root, false, "ROOT"},
		{syntax.SimpleTable, false, "SimpleTable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.token, tt.kind.IsToken())
			assert.Equal(t, !tt.token, tt.kind.IsNode())
			assert.Equal(t, tt.name, tt.kind.String())
		})
	}
}
