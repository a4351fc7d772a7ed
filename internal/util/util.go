package util

import "strings"

// NormalizeEmail canonicalizes an email address for storage and lookup:
// surrounding whitespace is trimmed and the address is lower-cased.
// Every store access goes through this, so case-variant duplicates
// cannot slip past the uniqueness constraint.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
