// Package align lines up two versions of a document for a side-by-side view.
//
// The line alignment comes from a Ratcliff/Obershelp sequence matcher
// (https://github.com/pmezard/go-difflib): the longest block of lines common
// to both documents is taken as an anchor, then the regions before and after
// it are aligned the same way. Lines that are not part of a common block are
// paired up in order and compared character by character, so that only the
// words that changed get highlighted. Space and tab are junk characters for
// that comparison, which keeps highlights from starting or ending in the
// middle of a run of blanks.
//
// Like the matcher it is built on, it is not smart about moved lines: a
// paragraph that moved shows up as deleted at one place and inserted at
// another.
package align
