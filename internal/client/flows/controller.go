package flows

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/otp"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// SignupService is the part of the account service the signup flow calls.
type SignupService interface {
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (*models.Session, error)
}

// ResetService is the part of the account service the reset flow calls.
type ResetService interface {
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

// SessionStarter receives the session created by a verified signup.
type SessionStarter interface {
	Login(ctx context.Context, user *models.User, token string) error
}

// SignupController runs one signup flow instance.
type SignupController struct {
	svc      SignupService
	sessions SessionStarter
	log      logging.Logger
	m        machine[SignupState, SignupEvent]
}

func NewSignupController(svc SignupService, sessions SessionStarter, log logging.Logger) *SignupController {
	if log == nil {
		log = logging.Nop()
	}
	return &SignupController{
		svc:      svc,
		sessions: sessions,
		log:      log.With("flow", "signup"),
		m:        machine[SignupState, SignupEvent]{reduce: ReduceSignup},
	}
}

// State returns a snapshot of the flow.
func (c *SignupController) State() SignupState {
	return c.m.current()
}

// Submit sends the signup form. On success the flow waits for the OTP.
func (c *SignupController) Submit(ctx context.Context, req models.SignupRequest) error {
	return c.m.call(ctx, SubmitProfile{Request: req}, release{}, func(ctx context.Context, _ SignupState) (SignupEvent, error) {
		if _, err := c.svc.Signup(ctx, req); err != nil {
			c.log.Warn(ctx, "signup failed", "error", err)
			return ProfileFailed{Err: err}, err
		}
		c.log.Info(ctx, "signup accepted, awaiting otp")
		return ProfileAccepted{Request: req}, nil
	})
}

// Enter checks that the verification step may be shown. Without a pending
// email the flow is reset and ErrNoPendingVerification returned.
func (c *SignupController) Enter() error {
	_, _, err := c.m.apply(Enter{})
	return err
}

// Edit applies one OTP box event. Typing the last digit of a complete code
// or pasting a full code submits it at once.
func (c *SignupController) Edit(ctx context.Context, e otp.Event) error {
	_, eff, err := c.m.apply(EditOTP{Event: e})
	if err != nil {
		return err
	}
	if eff == EffectSubmit {
		return c.Verify(ctx)
	}
	return nil
}

// Verify checks the entered code. On success the new session is handed to
// the session manager and the flow ends in Verified.
func (c *SignupController) Verify(ctx context.Context) error {
	return c.m.call(ctx, SubmitOTP{}, release{}, func(ctx context.Context, s SignupState) (SignupEvent, error) {
		sess, err := c.svc.VerifyOTP(ctx, s.Pending.Email, s.OTP.Code())
		if err != nil {
			c.log.Warn(ctx, "otp verification failed", "error", err)
			return OTPFailed{Err: err}, err
		}
		if err := c.sessions.Login(ctx, sess.User, sess.Token); err != nil {
			c.log.Error(ctx, "starting session failed", "error", err)
			return OTPFailed{Err: err}, err
		}
		c.log.Info(ctx, "signup verified", "user_id", sess.User.ID)
		return OTPVerified{}, nil
	})
}

// Resend replays the original signup form so the service mails a new code.
func (c *SignupController) Resend(ctx context.Context) error {
	return c.m.call(ctx, Resend{}, release{}, func(ctx context.Context, s SignupState) (SignupEvent, error) {
		if _, err := c.svc.Signup(ctx, s.Pending.Request); err != nil {
			c.log.Warn(ctx, "resend failed", "error", err)
			return ResendFailed{Err: err}, err
		}
		return Resent{}, nil
	})
}

// Abandon discards the flow, including the pending form. A response still in
// flight is dropped when it arrives.
func (c *SignupController) Abandon() {
	c.m.reset(SignupState{})
}

// ResetController runs one password reset flow instance. It never logs the
// user in.
type ResetController struct {
	svc ResetService
	log logging.Logger
	m   machine[ResetState, ResetEvent]
}

func NewResetController(svc ResetService, log logging.Logger) *ResetController {
	if log == nil {
		log = logging.Nop()
	}
	return &ResetController{
		svc: svc,
		log: log.With("flow", "reset"),
		m:   machine[ResetState, ResetEvent]{reduce: ReduceReset},
	}
}

func (c *ResetController) State() ResetState {
	return c.m.current()
}

// RequestCode asks the service to mail a reset code to email.
func (c *ResetController) RequestCode(ctx context.Context, email string) error {
	return c.m.call(ctx, RequestCode{Email: email}, release{}, func(ctx context.Context, _ ResetState) (ResetEvent, error) {
		if _, err := c.svc.ForgotPassword(ctx, email); err != nil {
			c.log.Warn(ctx, "reset code request failed", "error", err)
			return CodeFailed{Err: err}, err
		}
		return CodeSent{Email: email}, nil
	})
}

func (c *ResetController) Enter() error {
	_, _, err := c.m.apply(Enter{})
	return err
}

// Edit applies one OTP box event. A complete code is never submitted
// without the password fields.
func (c *ResetController) Edit(e otp.Event) error {
	_, _, err := c.m.apply(EditOTP{Event: e})
	return err
}

// Submit validates the code and passwords locally and only then calls the
// service.
func (c *ResetController) Submit(ctx context.Context, newPassword, confirmation string) error {
	start := SubmitReset{NewPassword: newPassword, Confirmation: confirmation}
	return c.m.call(ctx, start, release{}, func(ctx context.Context, s ResetState) (ResetEvent, error) {
		if _, err := c.svc.ResetPassword(ctx, s.Email, s.OTP.Code(), newPassword); err != nil {
			c.log.Warn(ctx, "password reset failed", "error", err)
			return ResetFailed{Err: err}, err
		}
		c.log.Info(ctx, "password reset")
		return PasswordReset{}, nil
	})
}

func (c *ResetController) Resend(ctx context.Context) error {
	return c.m.call(ctx, Resend{}, release{}, func(ctx context.Context, s ResetState) (ResetEvent, error) {
		if _, err := c.svc.ForgotPassword(ctx, s.Email); err != nil {
			return ResendFailed{Err: err}, err
		}
		return Resent{}, nil
	})
}

func (c *ResetController) Abandon() {
	c.m.reset(ResetState{})
}

// IsLocal reports whether err was produced without contacting the service.
func IsLocal(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrNoPendingVerification) ||
		errors.Is(err, ErrWrongStep)
}
