package utils

import "strings"

// NormalizeEmail lower-cases and trims an email address. Invitations are
// matched to accounts by this normalized form, so every write and every
// comparison must go through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
