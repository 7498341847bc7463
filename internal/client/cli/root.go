package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/guard"
)

func (a *App) getStatus() string {
	s := ""
	if u, err := a.sessions.CurrentUser(); err == nil {
		s = u.Email + " "
	}
	if mode := a.Mode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root is the entry screen. It waits for the stored session, opens the
// profile for a returning user or the login prompt otherwise, and then
// hands over to the REPL.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to gophauth (type 'help' for commands)")

	res, err := guard.Await(ctx, a.sessions, routeProfile)
	if err != nil {
		return
	}
	switch res.Decision {
	case guard.Authorized:
		_ = a.Profile(ctx)
	case guard.Redirected:
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
