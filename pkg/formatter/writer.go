package formatter

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

// container is an open block that prefixes the lines written inside it. A
// block quote uses the same marker on every line; a list item uses its
// marker on the first line and padding on the rest.
type container struct {
	marker string
	cont   string
	used   bool
	quote  bool
}

func quoteContainer() *container {
	return &container{marker: "> ", cont: "> ", quote: true}
}

func (ct *container) use() string {
	if ct.used {
		return ct.cont
	}
	ct.used = true
	return ct.marker
}

func (ct *container) width() int {
	if ct.used {
		return ansi.PrintableRuneWidth(ct.cont)
	}
	return ansi.PrintableRuneWidth(ct.marker)
}

// writer accumulates output lines. Blank lines are deferred until the next
// non-blank line so runs collapse to one and leading or trailing blanks are
// dropped.
type writer struct {
	sb         strings.Builder
	containers []*container
	pending    string
	hasPending bool
	started    bool
}

func (w *writer) push(ct *container) { w.containers = append(w.containers, ct) }

func (w *writer) pop() { w.containers = w.containers[:len(w.containers)-1] }

// prefixWidth returns the display width taken by open containers.
func (w *writer) prefixWidth() int {
	total := 0
	for _, ct := range w.containers {
		total += ct.width()
	}
	return total
}

func (w *writer) flushPending() {
	if w.hasPending {
		w.sb.WriteString(w.pending)
		w.sb.WriteByte('\n')
		w.hasPending = false
	}
}

// writeLine writes s behind the container prefixes.
func (w *writer) writeLine(s string) {
	w.flushPending()
	for _, ct := range w.containers {
		w.sb.WriteString(ct.use())
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
	w.started = true
}

// blank requests an empty line. Its container markers are kept with trailing
// spaces trimmed. Of several consecutive requests the one with the shortest
// prefix wins, so a blank line that separates two quotes stays unquoted.
func (w *writer) blank() {
	if !w.started {
		return
	}

	line := strings.TrimRight(w.markers(), " ")

	if !w.hasPending || len(line) < len(w.pending) {
		w.pending = line
		w.hasPending = true
	}
}

// markers returns the prefixes of the open containers without consuming
// them.
func (w *writer) markers() string {
	var sb strings.Builder
	for _, ct := range w.containers {
		if ct.used {
			sb.WriteString(ct.cont)
		} else {
			sb.WriteString(ct.marker)
		}
	}
	return sb.String()
}

// writeRaw writes text exactly, ignoring container prefixes. A missing final
// newline is added; blank lines before it are kept.
func (w *writer) writeRaw(text string) {
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	w.flushPending()
	w.sb.WriteString(text)
	w.sb.WriteByte('\n')
	w.started = true
}

func (w *writer) String() string { return w.sb.String() }
