// Package charclass holds the codepoint predicates used while scanning
// comment text.
package charclass

// cyrillicRanges are the Unicode blocks counted as Cyrillic, inclusive.
var cyrillicRanges = [...]struct{ lo, hi rune }{
	{0x0400, 0x04FF}, // Cyrillic
	{0x0500, 0x052F}, // Cyrillic Supplement
	{0x2DE0, 0x2DFF}, // Cyrillic Extended-A
	{0xA640, 0xA69F}, // Cyrillic Extended-B
}

// IsCyrillic reports whether r lies in one of the Cyrillic blocks.
// Cyrillic Extended-C and the phonetic extensions are not included.
func IsCyrillic(r rune) bool {
	for _, rg := range cyrillicRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// IsSpace matches the C locale whitespace set.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsWordSeparator reports whether r ends a word inside a comment. Hyphen and
// apostrophe are not separators.
func IsWordSeparator(r rune) bool {
	if IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '!', '?',
		'(', ')', '[', ']', '{', '}',
		'"', '<', '>', '=', '+', '*', '/',
		'&', '|', '^', '%', '$', '#', '@', '~', '`':
		return true
	}
	return false
}
