package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidSession = errors.New("invalid session")
var ErrSessionRevoked = errors.New("session revoked")

// Identity is the authenticated actor behind a session.
type Identity struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Credential is one entry of a credential source.
type Credential struct {
	Username    string
	Password    string
	DisplayName string
}

// Name is the display name, or the username when none is set.
func (c Credential) Name() string {
	if c.DisplayName == "" {
		return c.Username
	}
	return c.DisplayName
}
