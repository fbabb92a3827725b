package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/qmdfmt/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

func files(n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, wordFile)
	}
	return fmt.Sprintf("%d %s", n, wordFiles)
}

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "2 files would be reformatted, 5 files already formatted". wrote selects
// the past tense used after files were rewritten.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, wrote bool) string {
	unchanged := stats.FilesFormatted - stats.FilesChanged

	var parts []string
	switch {
	case stats.FilesChanged == 0 && stats.FilesErrored == 0 && stats.FilesUnverified == 0:
		return s.Success.Render(fmt.Sprintf("All %s formatted", files(stats.FilesFormatted))) + "\n"
	case stats.FilesChanged == 0:
	case wrote:
		parts = append(parts, s.Success.Render(files(stats.FilesWritten)+" reformatted"))
	default:
		parts = append(parts, s.Warning.Render(files(stats.FilesChanged)+" would be reformatted"))
	}

	if unchanged > 0 {
		parts = append(parts, s.Dim.Render(files(unchanged)+" already formatted"))
	}
	if stats.FilesUnverified > 0 {
		parts = append(parts, s.Failure.Render(files(stats.FilesUnverified)+" failed verification"))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(files(stats.FilesErrored)+" could not be formatted"))
	}

	return strings.Join(parts, ", ") + "\n"
}
