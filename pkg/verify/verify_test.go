package verify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/qmdfmt/pkg/config"
	"github.com/yaklabco/qmdfmt/pkg/qmdfmt"
	"github.com/yaklabco/qmdfmt/pkg/verify"
)

func TestCodeBlocks(t *testing.T) {
	t.Parallel()

	src := "text\n\n```{r}\nx <- 1\n\ny <- 2\n```\n\n> ```py\n> print(1)\n> ```\n"
	blocks := verify.CodeBlocks([]byte(src))

	require.Len(t, blocks, 2)
	assert.Equal(t, verify.CodeBlock{Info: "{r}", Content: "x <- 1\n\ny <- 2\n"}, blocks[0])
	assert.Equal(t, verify.CodeBlock{Info: "py", Content: "print(1)\n"}, blocks[1])
}

func TestCheckFormattedOutput(t *testing.T) {
	t.Parallel()

	original := "# Title #\nsome    prose that\nwraps.\n\n```python\ndef f():\n    return   1\n```\n"
	cfg := config.Default()

	formatted, err := qmdfmt.Format(original, &cfg)
	require.NoError(t, err)

	assert.Empty(t, verify.Check(original, formatted, cfg))
}

func TestCheckDetectsCodeChange(t *testing.T) {
	t.Parallel()

	original := "```\na  b\n```\n"
	tampered := "```\na b\n```\n"

	violations := verify.Check(original, tampered, config.Default())
	require.Len(t, violations, 1)
	assert.True(t, errors.Is(violations[0], verify.ErrCodeChanged))
	assert.Contains(t, violations[0].Error(), "block 1")
}

func TestCheckDetectsDroppedBlock(t *testing.T) {
	t.Parallel()

	violations := verify.Check("```\nx\n```\n", "x\n", config.Default())
	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], verify.ErrCodeCount)
}

func TestCheckDetectsNonCanonical(t *testing.T) {
	t.Parallel()

	violations := verify.Check("a\nb\n", "a\nb\n", config.Default())
	require.Len(t, violations, 1)
	assert.ErrorIs(t, violations[0], verify.ErrNotIdempotent)
}
