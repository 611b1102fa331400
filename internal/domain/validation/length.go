package validation

import (
	"strings"
	"unicode/utf16"
)

// Length counts UTF-16 code units, the unit the academy's form limits were
// written against. Characters outside the BMP (most emoji) count twice.
func Length(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// TrimForm trims the whitespace a browser form trims before submitting. It
// differs from strings.TrimSpace on U+0085 (kept) and U+FEFF (trimmed).
func TrimForm(s string) string {
	return strings.TrimFunc(s, isFormSpace)
}

func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
