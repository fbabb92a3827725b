// Package syntax defines the lossless concrete syntax tree shared by the
// lexer, parser, and formatter.
package syntax

import "strconv"

// Kind classifies both leaf tokens and interior nodes. Token kinds and node
// kinds occupy disjoint ranges so a single value identifies any tree element.
type Kind uint16

// Token kinds produced by the lexer.
const (
	Whitespace Kind = iota
	Newline
	Text

	DivMarker        // ::: run
	FrontmatterDelim // exactly --- or +++ at line start
	BlockQuoteMarker // >
	ListMarker       // - + * or digits followed by '.'
	CommentStart     // <!--
	CommentEnd       // -->
	Attribute        // {...}

	LinkStart      // [ that did not close as a link
	ImageLinkStart // ![ that did not close as an image
	Link           // [text](url)
	ImageLink      // ![alt](url)

	InlineMathMarker // $
	BlockMathMarker  // $$ run

	CodeSpan        // `code`
	CodeFenceMarker // ``` or ~~~ run

	LatexCommand  // \name[opt]{arg}
	LatexEnvBegin // \begin{name}
	LatexEnvEnd   // \end{name}

	InlineFootnoteStart // ^[
	InlineFootnoteEnd   // ] closing an inline footnote

	tokenKindEnd
)

// Node kinds produced by the parser.
const (
	Root Kind = iota + 100
	Document

	Frontmatter
	Heading
	AtxHeadingMarker
	HeadingContent
	SetextHeadingUnderline
	Paragraph
	BlankLine
	BlockQuote
	List
	ListItem
	Comment
	SimpleTable

	CodeBlock
	CodeFenceOpen
	CodeInfo
	CodeContent
	CodeFenceClose

	FencedDiv
	DivFenceOpen
	DivInfo
	DivContent
	DivFenceClose

	MathBlock
	MathContent
	InlineMath

	LatexEnvironment
	LatexEnvContent
	StandaloneLatexCommand

	InlineFootnote

	nodeKindEnd
)

var kindNames = map[Kind]string{
	Whitespace:          "WHITESPACE",
	Newline:             "NEWLINE",
	Text:                "TEXT",
	DivMarker:           "DivMarker",
	FrontmatterDelim:    "FrontmatterDelim",
	BlockQuoteMarker:    "BlockQuoteMarker",
	ListMarker:          "ListMarker",
	CommentStart:        "CommentStart",
	CommentEnd:          "CommentEnd",
	Attribute:           "Attribute",
	LinkStart:           "LinkStart",
	ImageLinkStart:      "ImageLinkStart",
	Link:                "Link",
	ImageLink:           "ImageLink",
	InlineMathMarker:    "InlineMathMarker",
	BlockMathMarker:     "BlockMathMarker",
	CodeSpan:            "CodeSpan",
	CodeFenceMarker:     "CodeFenceMarker",
	LatexCommand:        "LatexCommand",
	LatexEnvBegin:       "LatexEnvBegin",
	LatexEnvEnd:         "LatexEnvEnd",
	InlineFootnoteStart: "InlineFootnoteStart",
	InlineFootnoteEnd:   "InlineFootnoteEnd",

	Root:                   "ROOT",
	Document:               "DOCUMENT",
	Frontmatter:            "FRONTMATTER",
	Heading:                "Heading",
	AtxHeadingMarker:       "AtxHeadingMarker",
	HeadingContent:         "HeadingContent",
	SetextHeadingUnderline: "SetextHeadingUnderline",
	Paragraph:              "PARAGRAPH",
	BlankLine:              "BlankLine",
	BlockQuote:             "BlockQuote",
	List:                   "List",
	ListItem:               "ListItem",
	Comment:                "Comment",
	SimpleTable:            "SimpleTable",
	CodeBlock:              "CodeBlock",
	CodeFenceOpen:          "CodeFenceOpen",
	CodeInfo:               "CodeInfo",
	CodeContent:            "CodeContent",
	CodeFenceClose:         "CodeFenceClose",
	FencedDiv:              "FencedDiv",
	DivFenceOpen:           "DivFenceOpen",
	DivInfo:                "DivInfo",
	DivContent:             "DivContent",
	DivFenceClose:          "DivFenceClose",
	MathBlock:              "MathBlock",
	MathContent:            "MathContent",
	InlineMath:             "InlineMath",
	LatexEnvironment:       "LatexEnvironment",
	LatexEnvContent:        "LatexEnvContent",
	StandaloneLatexCommand: "StandaloneLatexCommand",
	InlineFootnote:         "InlineFootnote",
}

// String returns the display name used in tree dumps.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsToken reports whether k is a leaf token kind.
func (k Kind) IsToken() bool {
	return k < tokenKindEnd
}

// IsNode reports whether k is an interior node kind.
func (k Kind) IsNode() bool {
	return k >= Root && k < nodeKindEnd
}

// IsTrivia reports whether k carries no content of its own.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Newline
}

// IsVerbatim reports whether nodes of kind k are emitted byte-for-byte by the
// formatter.
func (k Kind) IsVerbatim() bool {
	switch k {
	case CodeBlock, Frontmatter, Comment, SimpleTable, LatexEnvironment, StandaloneLatexCommand:
		return true
	default:
		return false
	}
}

// IsBlock reports whether k is a block-level node kind that may appear as a
// child of a DOCUMENT-shaped container.
func (k Kind) IsBlock() bool {
	switch k {
	case Frontmatter, Heading, Paragraph, BlankLine, BlockQuote, List, ListItem,
		Comment, SimpleTable, CodeBlock, FencedDiv, MathBlock, LatexEnvironment,
		StandaloneLatexCommand:
		return true
	default:
		return false
	}
}
