// Package models holds the client-side data model: the authenticated Session,
// the User record and the request payloads sent to the account service.
package models

import (
	"errors"
	"strings"
)

var (
	ErrEmptyToken  = errors.New("session token is empty")
	ErrInvalidUser = errors.New("session user is missing id or email")
)

// Session is the authenticated identity held by the client. Token and User
// are always set together; a record with only one of them is not a session.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// NewSession is the only constructor for Session. Both response shapes of the
// account service (flat login, nested verify-otp) are funnelled through it.
func NewSession(token string, user *User) (*Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrEmptyToken
	}
	if !user.Valid() {
		return nil, ErrInvalidUser
	}
	u := *user
	return &Session{Token: token, User: &u}, nil
}

// Valid reports whether s holds both a non-empty token and a well-formed user.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != "" && s.User.Valid()
}
