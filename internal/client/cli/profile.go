package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/guard"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/tui"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

const (
	routeProfile     = "profile"
	routeEditProfile = "edit-profile"
)

// authorize runs the route guard for route. It waits for the session to be
// restored and sends an anonymous user to the login prompt. The returned
// bool reports whether the caller may go on.
func (a *App) authorize(ctx context.Context, route string) (bool, error) {
	res, err := guard.Await(ctx, a.sessions, route)
	if err != nil {
		return false, err
	}
	a.log.Debug(ctx, "route guard", "route", route, "decision", res.Decision.String())
	if res.Decision == guard.Authorized {
		return true, nil
	}
	a.println("Please log in to continue.")
	return false, a.Login(ctx)
}

// Profile fetches the current user from the server and prints it. If the
// server cannot be reached the cached copy is shown instead.
func (a *App) Profile(ctx context.Context) error {
	ok, err := a.authorize(ctx, routeProfile)
	if !ok {
		return err
	}

	u, err := a.authService.Profile(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return a.sessionExpired(ctx)
	case err != nil:
		a.reportError(err)
		cached, cerr := a.sessions.CurrentUser()
		if cerr != nil {
			return err
		}
		u = cached
	}

	a.printProfile(u)
	return nil
}

// EditProfile shows the edit form prefilled with the current user and sends
// the fields that changed.
func (a *App) EditProfile(ctx context.Context) error {
	ok, err := a.authorize(ctx, routeEditProfile)
	if !ok {
		return err
	}

	current, err := a.sessions.CurrentUser()
	if err != nil {
		return err
	}
	form := models.FormFor(current)
	if err := a.readProfileForm(ctx, &form); err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			a.println("Edit cancelled.")
			return nil
		}
		return err
	}

	u, err := a.authService.UpdateProfile(ctx, form)
	switch {
	case errors.Is(err, models.ErrCurrentPasswordRequired):
		a.println("Error: Please provide current password to change password")
		return err
	case errors.Is(err, client.ErrUnauthorized):
		return a.sessionExpired(ctx)
	case err != nil:
		a.reportError(err)
		return err
	}

	a.println("Profile updated successfully!")
	a.printProfile(u)
	return nil
}

func (a *App) readProfileForm(ctx context.Context, f *models.ProfileForm) error {
	if a.config.Interactive {
		return tui.Run(ctx, tui.ProfileForm(f))
	}

	var err error
	if f.Name, err = GetTextWithDefault(a.reader, "Name", f.Name, a.out); err != nil {
		return err
	}
	if f.Phone, err = GetTextWithDefault(a.reader, "Phone", f.Phone, a.out); err != nil {
		return err
	}
	if f.ProfileImage, err = GetTextWithDefault(a.reader, "Profile image URL", f.ProfileImage, a.out); err != nil {
		return err
	}

	newPassword, err := getPassword("New password (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)
	if len(newPassword) == 0 {
		return nil
	}
	f.NewPassword = string(newPassword)

	currentPassword, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(currentPassword)
	f.CurrentPassword = string(currentPassword)
	return nil
}

func (a *App) sessionExpired(ctx context.Context) error {
	a.println("Session expired. Please log in again.")
	return a.Login(ctx)
}

func (a *App) printProfile(u models.User) {
	a.println("Name: ", u.Name)
	a.println("Email:", u.Email)
	a.println("Phone:", u.Phone)
	if u.ProfileImage != "" {
		a.println("Image:", u.ProfileImage)
	}
}
