package domain

import (
	"encoding/gob"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// User is a registered account. PasswordHash holds a bcrypt hash; the
// plaintext password never leaves the auth service.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Principal is the identity carried in the session. It is written into the
// session exactly as produced by a strategy and read back unchanged.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Principal derives the session principal for u.
func (u *User) Principal() *Principal {
	return &Principal{ID: u.ID, Username: u.Username}
}

func init() {
	// Session values are gob-encoded by both session backends.
	gob.Register(&Principal{})
}
