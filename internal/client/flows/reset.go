package flows

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/otp"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

type ResetStep int

const (
	RequestingCode ResetStep = iota
	AwaitingOTPAndNewPassword
	ResetComplete
)

func (s ResetStep) String() string {
	switch s {
	case RequestingCode:
		return "requesting_code"
	case AwaitingOTPAndNewPassword:
		return "awaiting_otp_and_new_password"
	case ResetComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ResetState is the password reset flow. Email is the pending verification;
// it is set only in AwaitingOTPAndNewPassword.
type ResetState struct {
	Step   ResetStep
	Email  string
	OTP    otp.State
	Busy   bool
	Notice Notice
}

type ResetEvent interface {
	resetEvent()
}

type (
	RequestCode struct{ Email string }
	CodeSent    struct{ Email string }
	CodeFailed  struct{ Err error }
	// SubmitReset carries the password fields; the code comes from the OTP
	// boxes.
	SubmitReset struct {
		NewPassword  string
		Confirmation string
	}
	PasswordReset struct{}
	ResetFailed   struct{ Err error }
)

func (RequestCode) resetEvent()   {}
func (CodeSent) resetEvent()      {}
func (CodeFailed) resetEvent()    {}
func (SubmitReset) resetEvent()   {}
func (PasswordReset) resetEvent() {}
func (ResetFailed) resetEvent()   {}

const (
	msgEmailRequired    = "Please enter your email"
	msgCodeSent         = "OTP sent to your email!"
	msgIncompleteOTP    = "Please enter all 6 digits of OTP"
	msgShortPassword    = "Password must be at least 6 characters"
	msgPasswordMismatch = "Passwords do not match"
	msgPasswordReset    = "Password reset successfully! Please log in."
)

// ValidateReset runs the local checks of the reset step in order: complete
// code, password length, matching confirmation.
func ValidateReset(code otp.State, newPassword, confirmation string) error {
	switch {
	case !code.Complete():
		return invalid(msgIncompleteOTP)
	case common.PasswordTooShort(newPassword):
		return invalid(msgShortPassword)
	case newPassword != confirmation:
		return invalid(msgPasswordMismatch)
	}
	return nil
}

// ReduceReset applies e to s. Like ReduceSignup, the state returned with an
// error carries the notice to show.
func ReduceReset(s ResetState, e ResetEvent) (ResetState, Effect, error) {
	switch e := e.(type) {
	case RequestCode:
		if s.Step != RequestingCode {
			return s, EffectNone, ErrWrongStep
		}
		if s.Busy {
			return s, EffectNone, ErrBusy
		}
		if blank(e.Email) {
			s.Notice = Notice{Kind: NoticeValidation, Text: msgEmailRequired}
			return s, EffectNone, invalid(msgEmailRequired)
		}
		s.Busy = true
		s.Notice = Notice{}
		return s, EffectNone, nil

	case CodeSent:
		return ResetState{
			Step:   AwaitingOTPAndNewPassword,
			Email:  strings.TrimSpace(e.Email),
			Notice: info(msgCodeSent),
		}, EffectNone, nil

	case CodeFailed:
		s.Busy = false
		s.Notice = NoticeFor(e.Err, msgNetwork)
		return s, EffectNone, nil

	case Enter:
		if s.Step == AwaitingOTPAndNewPassword && !blank(s.Email) {
			return s, EffectNone, nil
		}
		if s.Step == ResetComplete {
			return s, EffectNone, ErrWrongStep
		}
		return ResetState{}, EffectNone, ErrNoPendingVerification

	case EditOTP:
		if err := s.canReset(); err != nil {
			return s, EffectNone, err
		}
		next, out := otp.Reduce(s.OTP, e.Event)
		if out.Accepted {
			s.OTP = next
			s.Notice = Notice{}
		}
		// The new password is still needed, so a full code never submits.
		return s, EffectNone, nil

	case SubmitReset:
		if err := s.canReset(); err != nil {
			return s, EffectNone, err
		}
		if err := ValidateReset(s.OTP, e.NewPassword, e.Confirmation); err != nil {
			s.Notice = NoticeFor(err, msgNetwork)
			return s, EffectNone, err
		}
		s.Busy = true
		s.Notice = Notice{}
		return s, EffectNone, nil

	case PasswordReset:
		return ResetState{Step: ResetComplete, Notice: info(msgPasswordReset)}, EffectNone, nil

	case ResetFailed:
		s.Busy = false
		s.Notice = NoticeFor(e.Err, msgNetwork)
		if isRemote(e.Err) {
			s.OTP = otp.State{}
		}
		return s, EffectNone, nil

	case Resend:
		if err := s.canReset(); err != nil {
			return s, EffectNone, err
		}
		s.Busy = true
		s.Notice = Notice{}
		return s, EffectNone, nil

	case Resent:
		s.Busy = false
		s.OTP = otp.State{}
		s.Notice = info(msgResent)
		return s, EffectNone, nil

	case ResendFailed:
		s.Busy = false
		s.Notice = NoticeFor(e.Err, msgNetworkRetry)
		return s, EffectNone, nil

	case release:
		s.Busy = false
		return s, EffectNone, nil
	}
	return s, EffectNone, ErrWrongStep
}

func (s ResetState) canReset() error {
	switch {
	case s.Step == RequestingCode:
		return ErrNoPendingVerification
	case s.Step != AwaitingOTPAndNewPassword:
		return ErrWrongStep
	case blank(s.Email):
		return ErrNoPendingVerification
	case s.Busy:
		return ErrBusy
	}
	return nil
}
