package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// NormalizeQuery folds full-width characters to their ASCII forms and trims the input.
// IME users often type ，＇－ and Ｘ instead of , ' - and X.
func NormalizeQuery(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

// IsValidQuery reports whether s only holds characters a pattern can use:
// letters, digits, separators and spaces.
func IsValidQuery(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\'' || r == '-' || r == ',' || r == ' ' || r == '\t':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return !IsHanText(s)
}

// IsHanText reports whether s is non-empty and made only of Han characters.
func IsHanText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
