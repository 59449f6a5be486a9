package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a URL-safe slug.
// "Thành Nội Café" → "thanh-noi-cafe"
func GenerateSlug(input string) string {
	// Step 1: Fold diacritics to plain ASCII
	ascii := RemoveDiacritics(input)

	// Step 2: Lowercase
	lower := strings.ToLower(ascii)

	// Step 3: Replace spaces with hyphens
	hyphenated := strings.ReplaceAll(lower, " ", "-")

	// Step 4: Strip everything except a-z, 0-9, hyphens
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 5: Collapse consecutive hyphens and trim the ends
	normalized := multiHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics strips combining marks after NFD decomposition, so any
// Latin-based name folds to ASCII ("Ánh" → "Anh"). đ/Đ don't decompose and
// are mapped by hand.
func RemoveDiacritics(input string) string {
	decomposed := norm.NFD.String(input)

	result := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			r = 'd'
		case 'Đ':
			r = 'D'
		}
		result = append(result, r)
	}

	return string(result)
}
