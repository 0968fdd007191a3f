package model

import (
	"strings"

	"gradscout/internal/domain"

	"github.com/google/uuid"
)

// User is the session-facing identity. Password is never set here; it lives
// only on Credentials.
type User struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// Credentials is the persisted account record. The password is stored in
// plaintext, a known flaw carried over from the product this serves; it is
// stripped before the user is held as session state.
type Credentials struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewCredentials(fullName, username, password string) (*Credentials, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	if fullName == "" || username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Credentials{
		ID:       uuid.NewString(),
		FullName: fullName,
		Username: username,
		Password: password,
	}, nil
}

// User strips the password for session use.
func (c *Credentials) User() User {
	return User{FullName: c.FullName, Username: c.Username}
}
