package render

import (
	"io"
	"strconv"

	"github.com/andreyvit/diff"
)

// Unified writes a unified diff of two texts, headed by the two names, in the
// format of diff -u. Nothing is written if the texts are equal.
func Unified(w io.Writer, name1, name2, a, b string, contextLines int) error {
	if a == b {
		return nil
	}
	ee := edits(diff.LineDiffAsLines(a, b))
	p := &printer{w: w}
	p.printf("--- %s\n+++ %s\n", name1, name2)
	for _, h := range hunks(ee, contextLines) {
		p.printf("@@ -%s +%s @@\n", location(h.lo, h.lc), location(h.ro, h.rc))
		for _, e := range ee[h.start:h.end] {
			p.printf("%s\n", e.line)
		}
	}
	return p.err
}

// edit is a line of a line diff, prefixed by ' ', '-' or '+'.
type edit struct {
	line string
	// Lines of each text before this one.
	left, right int
}

func (e edit) common() bool {
	return e.line[0] == ' '
}

func edits(lines []string) []edit {
	var ee []edit
	var left, right int
	for _, line := range lines {
		if line == "" {
			continue
		}
		ee = append(ee, edit{line: line, left: left, right: right})
		switch line[0] {
		case ' ':
			left++
			right++
		case '-':
			left++
		case '+':
			right++
		}
	}
	return ee
}

// hunk is the range [start, end) of edits, located in each text.
// See https://www.gnu.org/software/diffutils/manual/html_node/Hunks.html.
type hunk struct {
	start, end int
	lo, lc     int
	ro, rc     int
}

// hunks groups the changes with contextLines common lines around them. Changes
// separated by at most 2*contextLines common lines share a hunk.
func hunks(ee []edit, contextLines int) []hunk {
	var hh []hunk
	var cur *hunk
	lastChange := -1
	for i, e := range ee {
		if e.common() {
			continue
		}
		if cur != nil && i-lastChange-1 > 2*contextLines {
			cur.end = lastChange + 1 + contextLines
			hh = append(hh, *cur)
			cur = nil
		}
		if cur == nil {
			cur = &hunk{start: max(0, i-contextLines)}
		}
		lastChange = i
	}
	if cur != nil {
		cur.end = min(len(ee), lastChange+1+contextLines)
		hh = append(hh, *cur)
	}
	for i := range hh {
		h := &hh[i]
		h.lo, h.ro = ee[h.start].left, ee[h.start].right
		for _, e := range ee[h.start:h.end] {
			switch e.line[0] {
			case ' ':
				h.lc++
				h.rc++
			case '-':
				h.lc++
			case '+':
				h.rc++
			}
		}
	}
	return hh
}

// The start of an empty range is the line before it, as in GNU diff.
func location(offset, count int) string {
	switch count {
	case 0:
		return strconv.Itoa(offset) + ",0"
	case 1:
		return strconv.Itoa(offset + 1)
	default:
		return strconv.Itoa(offset+1) + "," + strconv.Itoa(count)
	}
}
