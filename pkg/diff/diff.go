// Package diff renders line-based unified diffs between a file and its
// formatted form.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// noNewline marks a final line that lacks a terminator.
const noNewline = `\ No newline at end of file`

// Op is the kind of a diff line.
type Op int

const (
	// Equal is a line present on both sides.
	Equal Op = iota
	// Delete is a line present only before formatting.
	Delete
	// Insert is a line present only after formatting.
	Insert
)

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string
	// Last is set on the final line of a side that has no trailing newline.
	Last bool
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	BeforeStart int
	BeforeCount int
	AfterStart  int
	AfterCount  int
	Lines       []Line
}

// Diff is the difference between two versions of a file.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

// Compute returns the diff from before to after, or nil when they are equal.
func Compute(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	a, aOpen := split(string(before))
	b, bOpen := split(string(after))

	lines := markOpenEnds(align(a, b), aOpen, bOpen)

	d := &Diff{Path: path, Hunks: hunks(lines)}
	for _, line := range lines {
		switch line.Op {
		case Insert:
			d.Insertions++
		case Delete:
			d.Deletions++
		case Equal:
		}
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Unified renders d in unified format with a/ and b/ path prefixes.
func (d *Diff) Unified() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n", span(h.BeforeStart, h.BeforeCount), span(h.AfterStart, h.AfterCount))
		for _, line := range h.Lines {
			sb.WriteString(line.Op.prefix())
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
			if line.Last {
				sb.WriteString(noNewline)
				sb.WriteByte('\n')
			}
		}
	}

	return sb.String()
}

// Stat summarizes d as "+N -M".
func (d *Diff) Stat() string {
	if d == nil {
		return "+0 -0"
	}
	return fmt.Sprintf("+%d -%d", d.Insertions, d.Deletions)
}

func (o Op) prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

func span(start, count int) string {
	if count == 1 {
		return fmt.Sprint(start)
	}
	if count == 0 {
		// An empty side points at the line before the change.
		return fmt.Sprintf("%d,0", start-1)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// split breaks s into lines and reports whether the last line is
// unterminated.
func split(s string) ([]string, bool) {
	if s == "" {
		return nil, false
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1], false
	}
	return lines, true
}

// align computes a longest-common-subsequence alignment of a and b.
func align(a, b []string) []Line {
	// suffix[i][j] is the LCS length of a[i:] and b[j:].
	suffix := make([][]int, len(a)+1)
	for i := range suffix {
		suffix[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	out := make([]Line, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, Line{Op: Equal, Text: a[i]})
			i++
			j++
		case suffix[i+1][j] >= suffix[i][j+1]:
			out = append(out, Line{Op: Delete, Text: a[i]})
			i++
		default:
			out = append(out, Line{Op: Insert, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, Line{Op: Delete, Text: a[i]})
	}
	for ; j < len(b); j++ {
		out = append(out, Line{Op: Insert, Text: b[j]})
	}
	return out
}

// markOpenEnds flags the final line of each side that lacks a newline. When
// only one side is unterminated and the last line is shared, it is split into
// a delete and an insert so the marker has a line to attach to.
func markOpenEnds(lines []Line, aOpen, bOpen bool) []Line {
	lastA, lastB := -1, -1
	for k, line := range lines {
		if line.Op != Insert {
			lastA = k
		}
		if line.Op != Delete {
			lastB = k
		}
	}

	if lastA >= 0 && lastA == lastB && aOpen != bOpen {
		text := lines[lastA].Text
		out := append(lines[:lastA:lastA],
			Line{Op: Delete, Text: text, Last: aOpen},
			Line{Op: Insert, Text: text, Last: bOpen},
		)
		return append(out, lines[lastA+1:]...)
	}

	if aOpen && lastA >= 0 {
		lines[lastA].Last = true
	}
	if bOpen && lastB >= 0 {
		lines[lastB].Last = true
	}
	return lines
}

// hunks groups aligned lines into hunks, merging changes separated by fewer
// than twice the context size.
func hunks(lines []Line) []Hunk {
	var changes []int
	for k, line := range lines {
		if line.Op != Equal {
			changes = append(changes, k)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var out []Hunk
	for c := 0; c < len(changes); {
		first := changes[c]
		last := first
		c++
		for c < len(changes) && changes[c]-last <= 2*contextLines {
			last = changes[c]
			c++
		}

		from := max(first-contextLines, 0)
		to := min(last+contextLines+1, len(lines))
		out = append(out, buildHunk(lines, from, to))
	}
	return out
}

func buildHunk(lines []Line, from, to int) Hunk {
	h := Hunk{BeforeStart: 1, AfterStart: 1}
	for _, line := range lines[:from] {
		if line.Op != Insert {
			h.BeforeStart++
		}
		if line.Op != Delete {
			h.AfterStart++
		}
	}

	h.Lines = append([]Line(nil), lines[from:to]...)
	for _, line := range h.Lines {
		if line.Op != Insert {
			h.BeforeCount++
		}
		if line.Op != Delete {
			h.AfterCount++
		}
	}
	return h
}
