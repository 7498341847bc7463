package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// SignupForm binds a huh form to req.
func SignupForm(req *models.SignupRequest) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&req.Name).Validate(required("name")),
			huh.NewInput().Key("email").Title("Email").Value(&req.Email).Validate(required("email")),
			huh.NewInput().Key("phone").Title("Phone").Value(&req.Phone).Validate(required("phone")),
			huh.NewInput().Key("password").Title("Password").
				EchoMode(huh.EchoModePassword).Value(&req.Password).Validate(required("password")),
		).Title("Create account"),
	)
}

// ResetFields is what the reset form collects next to the code.
type ResetFields struct {
	NewPassword  string
	Confirmation string
}

// ResetForm binds a huh form to f. Validation here only guides the user;
// the reset flow repeats the checks before submitting.
func ResetForm(f *ResetFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("new_password").Title("New password").
				EchoMode(huh.EchoModePassword).Value(&f.NewPassword).
				Validate(func(s string) error {
					if common.PasswordTooShort(s) {
						return errors.New("password must be at least 6 characters")
					}
					return nil
				}),
			huh.NewInput().Key("confirmation").Title("Confirm password").
				EchoMode(huh.EchoModePassword).Value(&f.Confirmation),
		).Title("Choose a new password"),
	)
}

// ProfileForm binds a huh form to the editable profile fields.
func ProfileForm(f *models.ProfileForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&f.Name),
			huh.NewInput().Key("phone").Title("Phone").Value(&f.Phone),
			huh.NewInput().Key("profile_image").Title("Profile image URL").Value(&f.ProfileImage),
		).Title("Edit profile"),
		huh.NewGroup(
			huh.NewInput().Key("current_password").Title("Current password").
				Description("Only needed to change the password").
				EchoMode(huh.EchoModePassword).Value(&f.CurrentPassword),
			huh.NewInput().Key("new_password").Title("New password").
				EchoMode(huh.EchoModePassword).Value(&f.NewPassword),
		).Title("Change password"),
	)
}

// Run shows form and maps the user aborting it to ErrCancelled.
func Run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
