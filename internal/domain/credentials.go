package domain

import (
	"encoding/json"
	"strings"
)

// Credentials is the sign-in payload. It is either EmailCredentials or
// PhoneCredentials; exactly one identifier field reaches the wire.
type Credentials interface {
	Identifier() string
	Kind() IdentifierKind
	json.Marshaler
	credentials()
}

type EmailCredentials struct {
	Email    string
	Password string
}

type PhoneCredentials struct {
	Phone    string
	Password string
}

// NewCredentials trims identifier, classifies it and pairs it with password.
func NewCredentials(identifier, password string) Credentials {
	id := strings.TrimSpace(identifier)
	if Classify(id) == KindPhone {
		return PhoneCredentials{Phone: id, Password: password}
	}
	return EmailCredentials{Email: id, Password: password}
}

func (c EmailCredentials) Identifier() string   { return c.Email }
func (c EmailCredentials) Kind() IdentifierKind { return KindEmail }
func (EmailCredentials) credentials()           {}

func (c EmailCredentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{c.Email, c.Password})
}

func (c PhoneCredentials) Identifier() string   { return c.Phone }
func (c PhoneCredentials) Kind() IdentifierKind { return KindPhone }
func (PhoneCredentials) credentials()           {}

func (c PhoneCredentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}{c.Phone, c.Password})
}
