// Package blank knows which characters are invisible in a text document.
// The set is wider than unicode.IsSpace: it also holds the zero-width
// characters, the word joiner and the byte order mark, which all show up in
// drafts converted from other formats.
package blank

import "strings"

// Set lists every character considered whitespace.
const Set = " \t\n\v\f\r" +
	"\u0085" + // next line
	"\u00A0" + // no-break space
	"\u1680" + // ogham space mark
	"\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200A" +
	"\u2028" + // line separator
	"\u2029" + // paragraph separator
	"\u202F" + // narrow no-break space
	"\u205F" + // medium mathematical space
	"\u3000" + // ideographic space
	"\u180E" + // mongolian vowel separator
	"\u200B\u200C\u200D" + // zero width space, non-joiner, joiner
	"\u2060" + // word joiner
	"\uFEFF" // zero width no-break space

// IsSpace tells whether r is in Set.
func IsSpace(r rune) bool {
	return strings.ContainsRune(Set, r)
}

// Trim removes leading and trailing characters of Set.
func Trim(s string) string {
	return strings.Trim(s, Set)
}

// IsBlank tells whether s is made of whitespace only. The empty string is blank.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !IsSpace(r) }) == -1
}
