package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSlug lowercases input, strips diacritics and joins words with hyphens
func GenerateSlug(input string) string {
	// Step 1: "Devworks Bootcamp – Ünïcode" → "Devworks Bootcamp – Unicode"
	ascii := RemoveDiacritics(input)

	// Step 2: lowercase
	lower := strings.ToLower(ascii)

	// Step 3: mọi chuỗi ký tự không phải a-z0-9 → một hyphen
	hyphenated := nonSlugChars.ReplaceAllString(lower, "-")

	return strings.Trim(hyphenated, "-")
}

// RemoveDiacritics decomposes input and drops combining marks ("Nguyễn" → "Nguyen")
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	// đ/Đ has no decomposition
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
