package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/flows"
	"github.com/dmitrijs2005/gophauth/internal/client/otp"
	"github.com/dmitrijs2005/gophauth/internal/client/tui"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Forgot asks for the account email and requests a reset code for it.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}

	if a.reset.State().Step != flows.RequestingCode {
		a.reset.Abandon()
	}
	err = a.reset.RequestCode(ctx, email)
	a.notify(a.reset.State().Notice)
	if err != nil {
		return err
	}
	return a.Reset(ctx)
}

// Reset collects the code and the new password and submits them. After a
// successful reset the user is sent to the login prompt; the reset itself
// never logs anyone in.
func (a *App) Reset(ctx context.Context) error {
	if err := a.reset.Enter(); err != nil {
		if errors.Is(err, flows.ErrNoPendingVerification) {
			a.println("No password reset is in progress.")
			return a.Forgot(ctx)
		}
		return err
	}

	a.printf("Enter the 6-digit code sent to %s, or %s for a new one.\n",
		a.reset.State().Email, a.resendHint())

	for {
		code, err := a.readCode(ctx, "Reset code", false)
		if err != nil {
			return err
		}
		switch code {
		case "":
			a.println("Password reset postponed. Type 'reset' to continue.")
			return nil
		case resendCommand:
			err := a.reset.Resend(ctx)
			a.notify(a.reset.State().Notice)
			if err != nil && isTransport(err) {
				return err
			}
			continue
		}

		if err := a.reset.Edit(otp.Reset{}); err != nil {
			return err
		}
		if err := a.reset.Edit(otp.Paste{Text: code}); err != nil {
			return err
		}

		fields, err := a.readResetFields(ctx)
		if errors.Is(err, tui.ErrCancelled) {
			a.println("Password reset postponed. Type 'reset' to continue.")
			return nil
		}
		if err != nil {
			return err
		}

		err = a.reset.Submit(ctx, fields.NewPassword, fields.Confirmation)
		a.notify(a.reset.State().Notice)
		if a.reset.State().Step == flows.ResetComplete {
			a.reset.Abandon()
			return a.Login(ctx)
		}
		if err != nil && isTransport(err) {
			return err
		}
	}
}

func (a *App) readResetFields(ctx context.Context) (tui.ResetFields, error) {
	var f tui.ResetFields
	if a.config.Interactive {
		err := tui.Run(ctx, tui.ResetForm(&f))
		return f, err
	}

	pw, err := getPassword("New password", a.out)
	if err != nil {
		return f, err
	}
	f.NewPassword = string(pw)
	common.WipeByteArray(pw)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return f, err
	}
	f.Confirmation = string(confirm)
	common.WipeByteArray(confirm)
	return f, nil
}
