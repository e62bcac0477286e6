package utils

import "strings"

// Slugify drops every byte of s that is not an ASCII letter or digit.
// Case is preserved and no Unicode folding is attempted.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// DeriveNoteId builds the public identifier of a note: slug(title) + "-" + ownerId.
// Two notes of the same owner whose titles slugify to the same value share an id.
func DeriveNoteId(title, ownerId string) string {
	return Slugify(title) + "-" + ownerId
}
