package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/qmdfmt/pkg/langdetect"
)

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"", ""},
		{"python", "python"},
		{"{r}", "r"},
		{"{python echo=false}", "python"},
		{"{.julia}", "julia"},
		{"R title=\"x\"", "r"},
		{"  {ojs}  ", "ojs"},
		{"{#lst-code}", ""},
		{"{=html}", ""},
		{"{}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.FromInfo(tt.info))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "text"},
		{"whitespace", "  \n\t\n", "text"},
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"r assignment", "x <- c(1, 2, 3)\nmean(x)", "r"},
		{"r library", "library(dplyr)", "r"},
		{"python def", "def foo():\n    pass", "python"},
		{"python import", "import numpy as np\nnp.zeros(3)", "python"},
		{"julia", "using Plots\nfunction f(x)\n    x^2\nend\n", "julia"},
		{"json", `{"key": "value"}`, "json"},
		{"sql", "select * from t where id = 1;", "sql"},
		{"yaml", "title: Report\nformat: html\n", "yaml"},
		{"latex", "\\begin{tikzpicture}\n\\draw (0,0);\n\\end{tikzpicture}", "latex"},
		{"mermaid", "flowchart LR\n  A --> B", "mermaid"},
		{"plain text", "just some text without any code patterns", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.Detect([]byte(tt.content))
			if got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestForCodeBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "python", langdetect.ForCodeBlock("{python}", []byte("x <- 1")))
	assert.Equal(t, "r", langdetect.ForCodeBlock("", []byte("x <- 1")))
	assert.Equal(t, "r", langdetect.ForCodeBlock("{#lst-a}", []byte("x <- 1")))
}
