package domain

import (
	"regexp"
	"strings"
)

// IdentifierKind tells the sign-in endpoint which field an identifier belongs in.
type IdentifierKind int

const (
	KindEmail IdentifierKind = iota
	KindPhone
)

func (k IdentifierKind) String() string {
	if k == KindPhone {
		return "phone"
	}
	return "email"
}

// Optional leading +, then 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

// Classify decides whether identifier is sent as an email or a phone number.
// Anything containing "@" is an email. Anything matching the phone pattern
// after trimming is a phone. Everything else falls back to email.
func Classify(identifier string) IdentifierKind {
	trimmed := strings.TrimSpace(identifier)
	if strings.Contains(trimmed, "@") {
		return KindEmail
	}
	if phonePattern.MatchString(trimmed) {
		return KindPhone
	}
	return KindEmail
}
