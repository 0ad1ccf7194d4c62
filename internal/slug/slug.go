// Package slug derives URL-safe identifiers from titles and keeps them
// unique within a collection.
package slug

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxLength caps generated slugs so they stay usable in URLs.
const DefaultMaxLength = 60

// Generate converts a title into a URL-safe slug capped at
// DefaultMaxLength. It is total: any input yields a valid (possibly
// empty) slug and it never fails.
func Generate(title string) string {
	return GenerateN(title, DefaultMaxLength)
}

// GenerateN is Generate with an explicit maximum length.
func GenerateN(title string, maxLength int) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteByte('-')
		}
		// Everything else (punctuation, symbols) is stripped.
	}
	s = b.String()

	// Collapse dash runs left behind by whitespace runs or stripped
	// punctuation adjacent to separators.
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	// Truncate on a rune boundary: kept letters may be multibyte, and a
	// byte-index cut through one would leave invalid UTF-8 behind.
	if maxLength > 0 && len(s) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}

	return strings.Trim(s, "-")
}

// MakeUnique returns base if it does not appear in existing, otherwise
// the first of base-1, base-2, ... that is absent. Deterministic for a
// fixed existing snapshot. When re-slugging an update the caller must
// exclude the record's own current slug from existing, or every no-op
// title edit would bump the suffix.
func MakeUnique(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
