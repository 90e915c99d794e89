package auth

import (
	"strings"

	"golang.org/x/text/cases"
)

const bearerScheme = "bearer "

// NormalizeIdentity folds an email address into its registry key form.
// Surrounding whitespace is removed and letters are case-folded, so
// "Bob@Example.com " and "bob@example.com" address the same mailbox.
func NormalizeIdentity(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return cases.Fold().String(email)
}

// ValidIdentity reports whether s looks like an email address: exactly one
// '@' with non-empty local and domain parts and no whitespace.
func ValidIdentity(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}

// StripScheme removes a leading "Bearer " marker. Input without the marker
// is returned unchanged apart from surrounding whitespace.
func StripScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= len(bearerScheme) && strings.EqualFold(raw[:len(bearerScheme)], bearerScheme) {
		return strings.TrimSpace(raw[len(bearerScheme):])
	}
	return raw
}
