package qmdfmt_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
)

var benchDocument = strings.Repeat("## Section\n\n"+
	"A paragraph of ordinary prose with `code`, $x^2$ math and a [link](https://quarto.org)\n"+
	"that runs on past the configured width so it has to be wrapped.\n\n"+
	"> quoted text that also wraps when the width is narrow enough\n\n"+
	"- item one\n  - nested item\n- item two\n\n"+
	"```{r}\nsummary(df)\n```\n\n", 50)

func BenchmarkFormat(b *testing.B) {
	cfg := config.Default()
	b.SetBytes(int64(len(benchDocument)))
	b.ResetTimer()
	for range b.N {
		if _, err := qmdfmt.Format(benchDocument, &cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchDocument)))
	b.ResetTimer()
	for range b.N {
		if _, err := qmdfmt.Parse(benchDocument); err != nil {
			b.Fatal(err)
		}
	}
}
