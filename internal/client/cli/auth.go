package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/flows"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

const msgNetwork = "Network error. Please check if the server is running."

// Login prompts the user for credentials and tries to authenticate.
// An empty email cancels the prompt. On success the profile is shown.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		a.println("Login cancelled. Type 'signup' to create an account or 'forgot' to reset your password.")
		return nil
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.reportError(err)
		return err
	}

	a.printf("Welcome, %s!\n", u.Name)
	return a.Profile(ctx)
}

// Logout ends the session locally. It is safe to call when logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.reportError(err)
		return err
	}
	a.println("Logged out.")
	return nil
}

// reportError prints err the way flows present their notices: service
// messages verbatim, transport failures as one generic connectivity message.
func (a *App) reportError(err error) {
	a.notify(flows.NoticeFor(err, msgNetwork))
}

func isTransport(err error) bool {
	return client.IsTransport(err) || errors.Is(err, context.Canceled)
}
