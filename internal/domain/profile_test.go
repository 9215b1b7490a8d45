package domain

import (
	"encoding/json"
	"testing"
)

func TestProfile_Contact(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		want    string
	}{
		{"nil profile", nil, ""},
		{"email preferred", &Profile{Email: StringPtr("a@b.co"), PhoneNumber: StringPtr("0812345678")}, "a@b.co"},
		{"empty email falls back to phone", &Profile{Email: StringPtr(""), PhoneNumber: StringPtr("0812345678")}, "0812345678"},
		{"phone only", &Profile{PhoneNumber: StringPtr("0812345678")}, "0812345678"},
		{"neither", &Profile{Name: "A"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Contact(); got != tt.want {
				t.Errorf("Contact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_Initial(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "alice", "A"},
		{"leading space", "  bob", "B"},
		{"multibyte", "éva", "É"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{Name: tt.in}
			if got := p.Initial(); got != tt.want {
				t.Errorf("Initial() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfile_JSONOptionalFields(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"name":"A","phoneNumber":"0812345678"}`), &p); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if p.Name != "A" {
		t.Errorf("Name = %q, want %q", p.Name, "A")
	}
	if p.Email != nil {
		t.Errorf("Email = %v, want nil", *p.Email)
	}
	if p.PhoneNumber == nil || *p.PhoneNumber != "0812345678" {
		t.Errorf("PhoneNumber = %v, want 0812345678", p.PhoneNumber)
	}

	data, err := json.Marshal(&Profile{Name: "A"})
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if string(data) != `{"name":"A"}` {
		t.Errorf("json = %s, want %s", data, `{"name":"A"}`)
	}
}

func TestSession_Clear(t *testing.T) {
	s := Session{Token: "t1", Profile: &Profile{Name: "A"}}
	if !s.Authenticated() {
		t.Fatal("expected Authenticated() = true")
	}
	s.Clear()
	if s.Authenticated() {
		t.Error("expected Authenticated() = false after Clear")
	}
	if s.Profile != nil {
		t.Error("expected Profile = nil after Clear")
	}
}
