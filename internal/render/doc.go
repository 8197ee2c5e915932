// Package render turns aligned rows, or the filtered documents themselves,
// into the output formats of iddiff: a side-by-side HTML table, HTML and
// plain-text word diffs, change bars, OLD/NEW blocks and unified diffs.
//
// Renderers add no alignment of their own, except for the word diffs, which
// compare the documents as streams of characters or words rather than lines.
// All of them write to an io.Writer and report the first write error.
package render
