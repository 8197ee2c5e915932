package render

import (
	"io"

	"github.com/nicolagi/iddiff/internal/align"
)

// ChangeBars writes the new document with a change bar in the first column:
// "|" for lines that changed, were inserted, or follow deleted lines, a space
// for the others. Gap rows are skipped, so rows should be aligned without
// context.
func ChangeBars(w io.Writer, rows []align.Row) error {
	p := &printer{w: w}
	pending := false
	for _, row := range rows {
		if row.Kind == align.ContextGap {
			continue
		}
		if row.Right == nil {
			pending = true
			continue
		}
		bar := " "
		if row.Kind == align.Changed || pending {
			bar = "|"
		}
		pending = false
		p.printf("%s%s\n", bar, trimEOL(row.Right.Text))
	}
	return p.err
}

// ABDiff writes each run of changed rows as an OLD section, holding the left
// lines, and a NEW section, holding the right lines. Lines are indented by two
// spaces and sections are separated by blank lines.
func ABDiff(w io.Writer, rows []align.Row) error {
	p := &printer{w: w}
	var block []align.Row
	flush := func() {
		if len(block) == 0 {
			return
		}
		p.print("OLD:\n\n")
		for _, row := range block {
			if row.Left != nil {
				p.printf("  %s\n", trimEOL(row.Left.Text))
			}
		}
		p.print("\nNEW:\n\n")
		for _, row := range block {
			if row.Right != nil {
				p.printf("  %s\n", trimEOL(row.Right.Text))
			}
		}
		p.print("\n")
		block = nil
	}
	for _, row := range rows {
		if row.Kind == align.Changed {
			block = append(block, row)
		} else {
			flush()
		}
	}
	flush()
	return p.err
}
