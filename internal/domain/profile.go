package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Profile is the account snapshot returned by the remote service.
// It is always replaced as a whole.
type Profile struct {
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// Contact returns the email if present, otherwise the phone number.
func (p *Profile) Contact() string {
	if p == nil {
		return ""
	}
	if p.Email != nil && *p.Email != "" {
		return *p.Email
	}
	if p.PhoneNumber != nil {
		return *p.PhoneNumber
	}
	return ""
}

// Initial is the avatar fallback: first letter of the name, upper-cased.
func (p *Profile) Initial() string {
	if p == nil {
		return ""
	}
	name := strings.TrimSpace(p.Name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func (p *Profile) Avatar() string {
	if p == nil || p.AvatarURL == nil {
		return ""
	}
	return *p.AvatarURL
}

// StringPtr is a small helper for building profiles with optional fields.
func StringPtr(s string) *string {
	return &s
}
