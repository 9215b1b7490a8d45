package domain

// Session is the view's in-memory authentication state. The persisted
// mirror only seeds it; server responses always win.
type Session struct {
	Token   string
	Profile *Profile
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SetProfile replaces the profile snapshot.
func (s *Session) SetProfile(p *Profile) {
	s.Profile = p
}

// Clear drops the token and the profile together.
func (s *Session) Clear() {
	s.Token = ""
	s.Profile = nil
}
