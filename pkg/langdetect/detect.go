// Package langdetect names the language of fenced code blocks. A block's info
// string wins when it carries a language, in plain Markdown form (```python)
// or as a Quarto executable chunk (```{r echo=false}). Otherwise the content
// is classified with go-enry.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

const (
	langBash    = "bash"
	langR       = "r"
	langPython  = "python"
	langJulia   = "julia"
	langJSON    = "json"
	langYAML    = "yaml"
	langSQL     = "sql"
	langLaTeX   = "latex"
	langMermaid = "mermaid"
)

// minYAMLKeys is the number of "key: value" lines that marks content as YAML.
const minYAMLKeys = 2

//nolint:gochecknoglobals // Fixed classifier candidates.
var candidates = []string{
	"R", "Python", "Julia", "Shell", "SQL", "JavaScript", "TypeScript",
	"Go", "Rust", "C++", "JSON", "YAML", "TeX", "HTML", "CSS",
}

//nolint:gochecknoglobals // Compiled once.
var infoLanguage = regexp.MustCompile(`^\{?\.?([A-Za-z][A-Za-z0-9_+#-]*)`)

// FromInfo extracts the language of a code fence info string. It accepts
// "python", "{r}", "{python echo=false}", "{.julia}" and "r title=x".
// It returns "" when the info string names no language.
func FromInfo(info string) string {
	info = strings.TrimSpace(info)
	if info == "" || strings.HasPrefix(info, "{#") || strings.HasPrefix(info, "{=") {
		return ""
	}
	m := infoLanguage.FindStringSubmatch(info)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ForCodeBlock returns the language from info when present, else a guess
// from content.
func ForCodeBlock(info string, content []byte) string {
	if lang := FromInfo(info); lang != "" {
		return lang
	}
	return Detect(content)
}

// Detect guesses the language of content. It returns [Text] when detection
// fails or the classifier is not confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, detect := range detectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

type detector func(content []byte) string

// detectors are tried in order before the classifier; each matches markers
// that are rare outside its language.
//
//nolint:gochecknoglobals // Fixed detection order.
var detectors = []detector{
	detectMermaid,
	detectLaTeX,
	detectR,
	detectPython,
	detectJulia,
	detectJSON,
	detectSQL,
	detectYAML,
}

func detectMermaid(content []byte) string {
	first, _, _ := bytes.Cut(bytes.TrimSpace(content), []byte("\n"))
	for _, kw := range []string{"graph ", "flowchart ", "sequenceDiagram", "classDiagram", "gantt"} {
		if bytes.HasPrefix(first, []byte(kw)) {
			return langMermaid
		}
	}
	return ""
}

func detectLaTeX(content []byte) string {
	if bytes.Contains(content, []byte(`\begin{`)) && bytes.Contains(content, []byte(`\end{`)) {
		return langLaTeX
	}
	return ""
}

func detectR(content []byte) string {
	s := string(content)
	for _, marker := range []string{" <- ", "library(", "%>%", "ggplot("} {
		if strings.Contains(s, marker) {
			return langR
		}
	}
	return ""
}

func detectPython(content []byte) string {
	s := string(content)
	switch {
	case strings.Contains(s, "def ") && strings.Contains(s, "):"):
		return langPython
	case strings.Contains(s, "__name__"):
		return langPython
	case strings.HasPrefix(strings.TrimSpace(s), "import ") && !strings.Contains(s, "import ("):
		return langPython
	case strings.Contains(s, "from ") && strings.Contains(s, " import "):
		return langPython
	}
	return ""
}

func detectJulia(content []byte) string {
	s := string(content)
	if strings.Contains(s, "using ") && (strings.Contains(s, "function ") || strings.Contains(s, "end\n")) {
		return langJulia
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "WITH "} {
		if strings.HasPrefix(upper, kw) {
			return langSQL
		}
	}
	return ""
}

func detectYAML(content []byte) string {
	keys := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"") {
			keys++
		}
	}
	if keys >= minYAMLKeys {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "TeX":
		return langLaTeX
	}
	return strings.ToLower(lang)
}
