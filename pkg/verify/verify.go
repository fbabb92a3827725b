// Package verify checks that a formatting result is safe to write: it must be
// a fixed point of the formatter and must leave fenced code untouched.
//
// Code blocks are located with goldmark, a CommonMark parser independent of
// the one used for formatting, so a parsing mistake on either side shows up
// as a mismatch instead of being silently agreed on.
package verify

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
)

// Sentinel errors wrapped by violations.
var (
	ErrNotIdempotent = errors.New("formatting is not idempotent")
	ErrCodeChanged   = errors.New("code block changed")
	ErrCodeCount     = errors.New("code block count changed")
)

// Violation describes one failed check.
type Violation struct {
	Err    error
	Detail string
}

func (v Violation) Error() string {
	if v.Detail == "" {
		return v.Err.Error()
	}
	return fmt.Sprintf("%v: %s", v.Err, v.Detail)
}

func (v Violation) Unwrap() error { return v.Err }

// CodeBlock is a fenced code block as seen by goldmark.
type CodeBlock struct {
	Info    string
	Content string
}

// Check compares original with its formatted form and returns every
// violation found. An empty result means the output is safe.
func Check(original, formatted string, cfg config.Config) []Violation {
	var violations []Violation

	again, err := qmdfmt.Format(formatted, &cfg)
	switch {
	case err != nil:
		violations = append(violations, Violation{Err: ErrNotIdempotent, Detail: err.Error()})
	case again != formatted:
		violations = append(violations, Violation{
			Err:    ErrNotIdempotent,
			Detail: fmt.Sprintf("second pass changed %d bytes to %d", len(formatted), len(again)),
		})
	}

	return append(violations, compareCode(CodeBlocks([]byte(original)), CodeBlocks([]byte(formatted)))...)
}

func compareCode(before, after []CodeBlock) []Violation {
	if len(before) != len(after) {
		return []Violation{{
			Err:    ErrCodeCount,
			Detail: fmt.Sprintf("%d before, %d after", len(before), len(after)),
		}}
	}

	var violations []Violation
	for i := range before {
		if before[i] != after[i] {
			violations = append(violations, Violation{
				Err:    ErrCodeChanged,
				Detail: fmt.Sprintf("block %d (info %q)", i+1, before[i].Info),
			})
		}
	}
	return violations
}

// CodeBlocks returns the fenced code blocks of a CommonMark document in
// source order.
func CodeBlocks(source []byte) []CodeBlock {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		if fenced.Info != nil {
			block.Info = string(fenced.Info.Value(source))
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			content.Write(seg.Value(source))
		}
		block.Content = content.String()

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	})

	return blocks
}
