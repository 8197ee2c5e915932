package align

import (
	"strings"
	"unicode/utf8"

	"github.com/nicolagi/iddiff/internal/blank"
	"github.com/pmezard/go-difflib/difflib"
)

// NoContext disables the elision of unchanged lines.
const NoContext = -1

type Kind int

const (
	Unchanged Kind = iota
	Changed
	ContextGap
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case ContextGap:
		return "gap"
	default:
		return "unknown"
	}
}

// Span is a byte range within Line.Text.
type Span struct {
	Start int
	End   int
}

type Line struct {
	// Number is the 1-based position of the line in its document.
	Number int
	Text   string
	// Spans mark what differs from the line on the other side. Always empty
	// for unchanged lines.
	Spans []Span
}

// Row is one line of the side-by-side view. For changed rows, one of Left and
// Right may be nil, meaning the line was inserted or deleted. Gap rows stand for
// unchanged lines that were left out; Gap numbers them from 0 in order of
// appearance.
type Row struct {
	Kind  Kind
	Left  *Line
	Right *Line
	Gap   int
}

// Align aligns the left and right lines. If context is not negative, runs of
// unchanged lines are cut down to the context lines closest to a change, and
// each cut is marked by a gap row.
func Align(left, right []string, context int) []Row {
	rows := pair(left, right)
	if context < 0 {
		return rows
	}
	return elide(rows, context)
}

func pair(left, right []string) []Row {
	var rows []Row
	for _, op := range difflib.NewMatcher(left, right).GetOpCodes() {
		if op.Tag == 'e' {
			for i, j := op.I1, op.J1; i < op.I2; i, j = i+1, j+1 {
				rows = append(rows, unchanged(left, i, right, j))
			}
			continue
		}
		n := min(op.I2-op.I1, op.J2-op.J1)
		for k := 0; k < n; k++ {
			i, j := op.I1+k, op.J1+k
			// The matcher leaves popular lines, such as blank ones, out of
			// the common blocks in large documents.
			if left[i] == right[j] {
				rows = append(rows, unchanged(left, i, right, j))
				continue
			}
			l := &Line{Number: i + 1, Text: left[i]}
			r := &Line{Number: j + 1, Text: right[j]}
			l.Spans, r.Spans = highlight(l.Text, r.Text)
			rows = appendChanged(rows, l, r)
		}
		for i := op.I1 + n; i < op.I2; i++ {
			l := &Line{Number: i + 1, Text: left[i]}
			l.Spans = whole(l.Text)
			rows = appendChanged(rows, l, nil)
		}
		for j := op.J1 + n; j < op.J2; j++ {
			r := &Line{Number: j + 1, Text: right[j]}
			r.Spans = whole(r.Text)
			rows = appendChanged(rows, nil, r)
		}
	}
	return rows
}

func unchanged(left []string, i int, right []string, j int) Row {
	return Row{
		Kind:  Unchanged,
		Left:  &Line{Number: i + 1, Text: left[i]},
		Right: &Line{Number: j + 1, Text: right[j]},
	}
}

// A change that only touches whitespace is not worth a row.
func appendChanged(rows []Row, l, r *Line) []Row {
	if !visible(l) && !visible(r) {
		return rows
	}
	return append(rows, Row{Kind: Changed, Left: l, Right: r})
}

func visible(line *Line) bool {
	if line == nil {
		return false
	}
	for _, s := range line.Spans {
		if !blank.IsBlank(line.Text[s.Start:s.End]) {
			return true
		}
	}
	return false
}

func whole(text string) []Span {
	if n := len(trimEOL(text)); n > 0 {
		return []Span{{Start: 0, End: n}}
	}
	return nil
}

func isCharJunk(s string) bool {
	return s == " " || s == "\t"
}

// highlight compares two lines character by character and returns the
// differing ranges of each. Line terminators are never highlighted.
func highlight(a, b string) (as, bs []Span) {
	ac, ao := chars(trimEOL(a))
	bc, bo := chars(trimEOL(b))
	m := difflib.NewMatcherWithJunk(ac, bc, false, isCharJunk)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			as = append(as, Span{Start: ao[op.I1], End: ao[op.I2]})
			bs = append(bs, Span{Start: bo[op.J1], End: bo[op.J2]})
		case 'd':
			as = append(as, Span{Start: ao[op.I1], End: ao[op.I2]})
		case 'i':
			bs = append(bs, Span{Start: bo[op.J1], End: bo[op.J2]})
		}
	}
	return as, bs
}

// chars splits s into its characters. Bytes that are not valid UTF-8 are
// characters of their own, kept as they are. The second result maps a
// character index to its byte offset in s, with one extra entry for len(s).
func chars(s string) ([]string, []int) {
	var cc []string
	var offsets []int
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		cc = append(cc, s[i:i+size])
		offsets = append(offsets, i)
		i += size
	}
	return cc, append(offsets, len(s))
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// elide cuts each run of more than 2*context unchanged rows down to its first
// and last context rows, with a gap row in between. Runs at the edges of the
// document are no exception.
func elide(rows []Row, context int) []Row {
	var out []Row
	gap := 0
	for i := 0; i < len(rows); {
		if rows[i].Kind != Unchanged {
			out = append(out, rows[i])
			i++
			continue
		}
		j := i
		for j < len(rows) && rows[j].Kind == Unchanged {
			j++
		}
		run := rows[i:j]
		if len(run) > 2*context {
			out = append(out, run[:context]...)
			out = append(out, Row{Kind: ContextGap, Gap: gap})
			gap++
			out = append(out, run[len(run)-context:]...)
		} else {
			out = append(out, run...)
		}
		i = j
	}
	return out
}

// Stats counts rows by what they show.
type Stats struct {
	Unchanged int
	Changed   int
	Deleted   int
	Inserted  int
	Gaps      int
}

func Summarize(rows []Row) Stats {
	var s Stats
	for _, row := range rows {
		switch {
		case row.Kind == Unchanged:
			s.Unchanged++
		case row.Kind == ContextGap:
			s.Gaps++
		case row.Right == nil:
			s.Deleted++
		case row.Left == nil:
			s.Inserted++
		default:
			s.Changed++
		}
	}
	return s
}
