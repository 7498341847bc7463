package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/flows"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/otp"
	"github.com/dmitrijs2005/gophauth/internal/client/tui"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

const resendCommand = "resend"

// Signup collects the signup form and submits it. On success it continues
// straight to the code entry.
func (a *App) Signup(ctx context.Context) error {
	req, err := a.readSignupForm(ctx)
	if errors.Is(err, tui.ErrCancelled) {
		a.println("Signup cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if a.signup.State().Step != flows.CollectingProfile {
		a.signup.Abandon()
	}
	err = a.signup.Submit(ctx, req)
	a.notify(a.signup.State().Notice)
	if err != nil {
		return err
	}
	return a.Verify(ctx)
}

func (a *App) readSignupForm(ctx context.Context) (models.SignupRequest, error) {
	var req models.SignupRequest
	if a.config.Interactive {
		err := tui.Run(ctx, tui.SignupForm(&req))
		return req, err
	}

	var err error
	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return req, err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return req, err
	}
	if req.Phone, err = getSimpleText(a.reader, "Enter phone", a.out); err != nil {
		return req, err
	}
	pw, err := getPassword("Enter password", a.out)
	if err != nil {
		return req, err
	}
	req.Password = string(pw)
	common.WipeByteArray(pw)
	return req, nil
}

// Verify asks for the signup code until it is accepted, the user gives up
// with an empty line, or the server cannot be reached. Without a signup in
// progress the user is sent to the signup form.
func (a *App) Verify(ctx context.Context) error {
	if err := a.signup.Enter(); err != nil {
		if errors.Is(err, flows.ErrNoPendingVerification) {
			a.println("No signup is awaiting verification.")
			return a.Signup(ctx)
		}
		return err
	}

	a.printf("Enter the 6-digit code sent to %s, or %s for a new one.\n",
		a.signup.State().Pending.Email, a.resendHint())

	for {
		code, err := a.readCode(ctx, "Verification code", true)
		if err != nil {
			return err
		}
		switch code {
		case "":
			a.println("Verification postponed. Type 'verify' to continue.")
			return nil
		case resendCommand:
			if err := a.Resend(ctx); err != nil && isTransport(err) {
				return err
			}
			continue
		}

		err = a.submitSignupCode(ctx, code)
		a.notify(a.signup.State().Notice)
		if a.signup.State().Step == flows.Verified {
			a.signup.Abandon()
			return a.Profile(ctx)
		}
		if err != nil && isTransport(err) {
			return err
		}
	}
}

// submitSignupCode replaces the boxes with code. A full code submits
// itself; anything else is submitted explicitly so the user is told what is
// missing.
func (a *App) submitSignupCode(ctx context.Context, code string) error {
	if err := a.signup.Edit(ctx, otp.Reset{}); err != nil {
		return err
	}
	if _, out := otp.Reduce(otp.State{}, otp.Paste{Text: code}); out.Completed {
		return a.signup.Edit(ctx, otp.Paste{Text: code})
	}
	if err := a.signup.Edit(ctx, otp.Paste{Text: code}); err != nil {
		return err
	}
	return a.signup.Verify(ctx)
}

// Resend asks the server to send a new signup code.
func (a *App) Resend(ctx context.Context) error {
	err := a.signup.Resend(ctx)
	if errors.Is(err, flows.ErrNoPendingVerification) {
		a.println("No signup is awaiting verification.")
		return err
	}
	a.notify(a.signup.State().Notice)
	return err
}

func (a *App) resendHint() string {
	if a.config.Interactive {
		return "press ctrl+r"
	}
	return "type '" + resendCommand + "'"
}

// readCode reads one code entry: the six-box widget in interactive mode,
// a line otherwise. The widget's resend key comes back as resendCommand.
func (a *App) readCode(ctx context.Context, title string, autoSubmit bool) (string, error) {
	if !a.config.Interactive {
		return getSimpleText(a.reader, title, a.out)
	}
	code, err := readOTP(ctx, a.in, a.out, title, autoSubmit)
	switch {
	case errors.Is(err, tui.ErrResend):
		return resendCommand, nil
	case errors.Is(err, tui.ErrCancelled):
		return "", nil
	}
	return code, err
}
