// Package fingerprint identifies a Spanish/English pair independently of
// case and surrounding whitespace.
package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize joins both sides after cleaning each one. It trims whitespace,
// lowercases, and normalizes line endings.
func Normalize(spanish, english string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	// A newline keeps "ab"+"c" and "a"+"bc" apart.
	return normalizePart(spanish) + "\n" + normalizePart(english)
}

// Of returns the SHA-256 of the normalized pair as a hex string.
func Of(spanish, english string) string {
	sum := sha256.Sum256([]byte(Normalize(spanish, english)))
	return fmt.Sprintf("%x", sum)
}

// Set tracks which pairs have been seen.
type Set map[string]struct{}

// Add records the pair and reports whether it was new.
func (s Set) Add(spanish, english string) bool {
	key := Of(spanish, english)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}
