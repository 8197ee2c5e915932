package render

import (
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nicolagi/iddiff/internal/blank"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// HWDiff writes an HTML word diff of two texts: a pre element holding both
// texts merged, with deletions and insertions in w-delete and w-insert spans.
// The comparison is character by character over the whole texts.
func HWDiff(w io.Writer, a, b string) error {
	ac, bc := splitChars(a), splitChars(b)
	p := &printer{w: w}
	p.print("<pre>")
	for _, op := range difflib.NewMatcher(ac, bc).GetOpCodes() {
		deleted := strings.Join(ac[op.I1:op.I2], "")
		inserted := strings.Join(bc[op.J1:op.J2], "")
		switch op.Tag {
		case 'e':
			p.print(html.EscapeString(deleted))
		case 'd':
			p.printf(`<span class="w-delete">%s</span>`, html.EscapeString(deleted))
		case 'i':
			p.printf(`<span class="w-insert">%s</span>`, html.EscapeString(inserted))
		case 'r':
			p.printf(`<span class="w-delete">%s</span>`, html.EscapeString(deleted))
			p.printf(`<span class="w-insert">%s</span>`, html.EscapeString(inserted))
		}
	}
	p.print("</pre>")
	return p.err
}

// splitChars splits s into its characters, each invalid UTF-8 byte being a
// character of its own.
func splitChars(s string) []string {
	var cc []string
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		cc = append(cc, s[:size])
		s = s[size:]
	}
	return cc
}

// word is a maximal run of non-space characters and the whitespace before it.
type word struct {
	space string
	text  string
}

// words splits s into words. The whitespace after the last word is returned
// separately.
func words(s string) ([]word, string) {
	var ww []word
	for len(s) > 0 {
		i := strings.IndexFunc(s, func(r rune) bool { return !blank.IsSpace(r) })
		if i == -1 {
			break
		}
		j := strings.IndexFunc(s[i:], blank.IsSpace)
		if j == -1 {
			j = len(s) - i
		}
		ww = append(ww, word{space: s[:i], text: s[i : i+j]})
		s = s[i+j:]
	}
	return ww, s
}

// wordsToRunes encodes each distinct word as a rune so that the words can be
// diffed as characters.
func wordsToRunes(a, b []word) ([]rune, []rune) {
	index := make(map[string]rune)
	encode := func(ww []word) []rune {
		rr := make([]rune, 0, len(ww))
		for _, wd := range ww {
			r, ok := index[wd.text]
			if !ok {
				r = rune(len(index))
				// Skip the surrogate halves, which are not valid runes.
				if r >= 0xD800 {
					r += 0x800
				}
				index[wd.text] = r
			}
			rr = append(rr, r)
		}
		return rr
	}
	return encode(a), encode(b)
}

// WDiff writes a plain-text word diff in the format of GNU wdiff: deleted
// words between [- and -], inserted words between {+ and +}. Only words are
// compared; unchanged words are written with the whitespace of the new text.
func WDiff(w io.Writer, a, b string) error {
	aw, _ := words(a)
	bw, trailing := words(b)
	ar, br := wordsToRunes(aw, bw)
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(ar, br, false))

	p := &printer{w: w}
	var ia, ib int
	var deleted, inserted []word
	flush := func() {
		if len(deleted) == 0 && len(inserted) == 0 {
			return
		}
		if len(inserted) > 0 {
			p.print(inserted[0].space)
		} else {
			p.print(deleted[0].space)
		}
		if len(deleted) > 0 {
			p.printf("[-%s-]", joinWords(deleted))
		}
		if len(inserted) > 0 {
			p.printf("{+%s+}", joinWords(inserted))
		}
		deleted, inserted = nil, nil
	}
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			for _, wd := range bw[ib : ib+n] {
				p.print(wd.space + wd.text)
			}
			ia += n
			ib += n
		case diffmatchpatch.DiffDelete:
			deleted = append(deleted, aw[ia:ia+n]...)
			ia += n
		case diffmatchpatch.DiffInsert:
			inserted = append(inserted, bw[ib:ib+n]...)
			ib += n
		}
	}
	flush()
	p.print(trailing)
	return p.err
}

// joinWords joins words with their own whitespace, leaving out the whitespace
// before the first one.
func joinWords(ww []word) string {
	var b strings.Builder
	for i, wd := range ww {
		if i > 0 {
			b.WriteString(wd.space)
		}
		b.WriteString(wd.text)
	}
	return b.String()
}
