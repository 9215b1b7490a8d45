package cli

import (
	"github.com/lu-zhengda/accountctl/internal/domain"
)

// ---------------------------------------------------------------------------
// Profile JSON type (login, me, status)
// ---------------------------------------------------------------------------

type jsonProfile struct {
	Name        string `json:"name"`
	Initial     string `json:"initial,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Cached      bool   `json:"cached,omitempty"`
}

func toJSONProfile(p *domain.Profile) *jsonProfile {
	if p == nil {
		return nil
	}
	out := &jsonProfile{
		Name:      p.Name,
		Initial:   p.Initial(),
		AvatarURL: p.Avatar(),
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		out.PhoneNumber = *p.PhoneNumber
	}
	return out
}

// ---------------------------------------------------------------------------
// Status JSON type (status)
// ---------------------------------------------------------------------------

type jsonStatus struct {
	LoggedIn       bool         `json:"logged_in"`
	TokenExpiresAt string       `json:"token_expires_at,omitempty"`
	Profile        *jsonProfile `json:"profile,omitempty"`
}

// ---------------------------------------------------------------------------
// Action JSON type (delete-account)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK     bool   `json:"ok"`
	Action string `json:"action"`
}
