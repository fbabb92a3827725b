package qmdfmt_test

import (
	"testing"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
)

func FuzzParseLossless(f *testing.F) {
	f.Add("# Title\n\nSome *text* with `code`.\n")
	f.Add("> quote\n> > nested\nlazy\n")
	f.Add("- a\n  - b\n\n1. one\n")
	f.Add("::: {.note}\n```r\nx\n```\n:::\n")
	f.Add("$$\nx^2\n$$\n")
	f.Add("a\r\nb\r\n")
	f.Add("| a | b |\n|---|---|\n| 1 | 2 |\n")
	f.Add("Intro:\n\n    >>> x = 1\n")
	f.Add("\t>::::[#) ..\n")

	f.Fuzz(func(t *testing.T, input string) {
		root, err := qmdfmt.Parse(input)
		if err != nil {
			return
		}
		if got := root.Text(); got != input {
			t.Fatalf("tree text differs from input:\n got %q\nwant %q", got, input)
		}

		cfg := config.Default()
		if _, err := qmdfmt.Format(input, &cfg); err != nil {
			t.Fatalf("Format failed after Parse succeeded: %v", err)
		}
	})
}
