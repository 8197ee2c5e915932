// Package filter drops the pagination artifacts of Internet-Draft and RFC
// plain-text documents: page footers, running headers and draft banners.
// Those lines repeat on every page and would otherwise show up as changes
// wherever the pagination of two revisions differs.
package filter

import (
	"regexp"
	"strings"

	"github.com/nicolagi/iddiff/internal/blank"
)

// Matched top to bottom against the line without its terminator.
var boilerplate = []*regexp.Regexp{
	// Page footer, e.g., "Crocker      [Page 5]".
	regexp.MustCompile(`^.*\[?[Pp]age [0-9ivx]+\]?[ \t\f]*$`),
	// Running headers.
	regexp.MustCompile(`^ *Internet.Draft.+[12][0-9][0-9][0-9] *$`),
	regexp.MustCompile(`^ *INTERNET.DRAFT.+[12][0-9][0-9][0-9] *$`),
	regexp.MustCompile(`^ *Draft.+(  +)[12][0-9][0-9][0-9] *$`),
	regexp.MustCompile(`^RFC[ -]?[0-9]+.*(  +).* [12][0-9][0-9][0-9]$`),
	regexp.MustCompile(`^draft-[-a-z0-9_.]+.*[0-9][0-9][0-9][0-9]$`),
}

// IsBoilerplate tells whether line is a pagination artifact.
func IsBoilerplate(line string) bool {
	line = trimEOL(line)
	for _, re := range boilerplate {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Filter returns the lines that are not boilerplate, in order. Kept lines are
// returned unchanged. If collapseBlank is set, each run of blank lines is
// replaced by a single empty line.
func Filter(lines []string, collapseBlank bool) []string {
	var kept []string
	if !collapseBlank {
		for _, line := range lines {
			if !IsBoilerplate(line) {
				kept = append(kept, line)
			}
		}
		return kept
	}
	previousBlank := false
	for _, line := range lines {
		if !blank.IsBlank(line) {
			previousBlank = false
			if !IsBoilerplate(line) {
				kept = append(kept, line)
			}
		} else if !previousBlank {
			kept = append(kept, blank.Trim(line))
			previousBlank = true
		}
	}
	return kept
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
