package qmdfmt

import (
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/config"
)

// DetectLineEnding returns the style of the first line terminator in input:
// [config.LineEndingCRLF] or [config.LineEndingLF]. Input without any newline
// is reported as LF.
func DetectLineEnding(input string) config.LineEnding {
	i := strings.IndexByte(input, '\n')
	if i > 0 && input[i-1] == '\r' {
		return config.LineEndingCRLF
	}
	return config.LineEndingLF
}

// applyLineEnding converts LF output to the ending chosen by policy. Auto
// restores the detected style.
func applyLineEnding(out string, policy, detected config.LineEnding) string {
	ending := policy
	if ending == config.LineEndingAuto {
		ending = detected
	}
	if ending == config.LineEndingCRLF {
		return strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out
}
