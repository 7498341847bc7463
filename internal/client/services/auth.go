// Package services contains application services for the gophauth client.
// This file defines the account service: password login, logout, the
// profile view and profile edits, and the liveness check.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// Sessions is the subset of the session manager the account service drives.
type Sessions interface {
	Login(ctx context.Context, user *models.User, token string) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
	CurrentUser() (models.User, error)
	CurrentToken() (string, error)
}

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and start a session.
//   - Logout: end the session locally; the server keeps no session state.
//   - Profile: fetch the user record and refresh the session's copy.
//   - UpdateProfile: send the changed fields of a profile form.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// Profile and UpdateProfile end the session when the server rejects the
// token and return an error wrapping client.ErrUnauthorized.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// session manager.
type authService struct {
	client   client.Client
	sessions Sessions
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session manager.
func NewAuthService(c client.Client, sessions Sessions, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, sessions: sessions, log: log.With("service", "auth")}
}

// Login exchanges credentials for a session. Any failure leaves the current
// session state untouched.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	if err := a.sessions.Login(ctx, s.User, s.Token); err != nil {
		return models.User{}, fmt.Errorf("start session: %w", err)
	}
	return *s.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

// Profile loads the user record from the server and merges it into the
// session.
func (a *authService) Profile(ctx context.Context) (models.User, error) {
	token, err := a.sessions.CurrentToken()
	if err != nil {
		return models.User{}, err
	}

	u, err := a.client.GetProfile(ctx, token)
	if err != nil {
		return models.User{}, a.handleAuthError(ctx, err)
	}
	return a.sessions.UpdateUser(ctx, models.PatchFrom(*u))
}

// UpdateProfile sends only the fields of form that differ from the current
// user. A form with no changes is not sent.
func (a *authService) UpdateProfile(ctx context.Context, form models.ProfileForm) (models.User, error) {
	current, err := a.sessions.CurrentUser()
	if err != nil {
		return models.User{}, err
	}
	token, err := a.sessions.CurrentToken()
	if err != nil {
		return models.User{}, err
	}

	upd, err := form.Diff(current)
	if err != nil {
		return models.User{}, err
	}
	if upd.IsEmpty() {
		return current, nil
	}

	u, err := a.client.UpdateProfile(ctx, token, upd)
	if err != nil {
		return models.User{}, a.handleAuthError(ctx, err)
	}
	return a.sessions.UpdateUser(ctx, models.PatchFrom(*u))
}

// handleAuthError logs the user out when the server refused the token.
// The token is never retried.
func (a *authService) handleAuthError(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	a.log.Warn(ctx, "session rejected by server, logging out")
	if lerr := a.sessions.Logout(ctx); lerr != nil {
		return errors.Join(err, lerr)
	}
	return err
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
