package utils

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// DigitsOnly strips everything but 0-9.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone accepts 10 to 15 digits once separators are removed.
func ValidPhone(phone string) bool {
	n := len(DigitsOnly(phone))
	return n >= 10 && n <= 15
}

// NormalizePhone drops spaces and dashes, keeping a leading "+".
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}
