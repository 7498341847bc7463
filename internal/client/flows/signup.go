package flows

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/otp"
)

type SignupStep int

const (
	CollectingProfile SignupStep = iota
	AwaitingOTP
	Verified
)

func (s SignupStep) String() string {
	switch s {
	case CollectingProfile:
		return "collecting_profile"
	case AwaitingOTP:
		return "awaiting_otp"
	case Verified:
		return "verified"
	default:
		return "unknown"
	}
}

// PendingSignup links the verification step to the submitted form. Request
// is kept verbatim so a resend can replay it.
type PendingSignup struct {
	Email   string
	Request models.SignupRequest
}

type SignupState struct {
	Step    SignupStep
	Pending *PendingSignup
	OTP     otp.State
	Busy    bool
	Notice  Notice
}

func (s SignupState) hasPending() bool {
	return s.Pending != nil && strings.TrimSpace(s.Pending.Email) != ""
}

type SignupEvent interface {
	signupEvent()
}

type (
	SubmitProfile   struct{ Request models.SignupRequest }
	ProfileAccepted struct{ Request models.SignupRequest }
	ProfileFailed   struct{ Err error }
	SubmitOTP       struct{}
	OTPVerified     struct{}
	OTPFailed       struct{ Err error }
)

func (SubmitProfile) signupEvent()   {}
func (ProfileAccepted) signupEvent() {}
func (ProfileFailed) signupEvent()   {}
func (SubmitOTP) signupEvent()       {}
func (OTPVerified) signupEvent()     {}
func (OTPFailed) signupEvent()       {}

const (
	msgFillAllFields  = "Please fill in all fields"
	msgAccountCreated = "Account created! Enter the code sent to your email."
	msgIncompleteCode = "Please enter all 6 digits"
	msgVerified       = "OTP verified successfully!"
)

// ReduceSignup applies e to s. On error the returned state is still the one
// to keep: it carries the notice describing the problem.
func ReduceSignup(s SignupState, e SignupEvent) (SignupState, Effect, error) {
	switch e := e.(type) {
	case SubmitProfile:
		if s.Step != CollectingProfile {
			return s, EffectNone, ErrWrongStep
		}
		if s.Busy {
			return s, EffectNone, ErrBusy
		}
		r := e.Request
		if blank(r.Name) || blank(r.Email) || blank(r.Phone) || r.Password == "" {
			s.Notice = Notice{Kind: NoticeValidation, Text: msgFillAllFields}
			return s, EffectNone, invalid(msgFillAllFields)
		}
		s.Busy = true
		s.Notice = Notice{}
		return s, EffectNone, nil

	case ProfileAccepted:
		return SignupState{
			Step:    AwaitingOTP,
			Pending: &PendingSignup{Email: e.Request.Email, Request: e.Request},
			Notice:  info(msgAccountCreated),
		}, EffectNone, nil

	case ProfileFailed:
		s.Busy = false
		s.Notice = NoticeFor(e.Err, msgNetwork)
		return s, EffectNone, nil

	case Enter:
		if s.Step == AwaitingOTP && s.hasPending() {
			return s, EffectNone, nil
		}
		if s.Step == Verified {
			return s, EffectNone, ErrWrongStep
		}
		return SignupState{}, EffectNone, ErrNoPendingVerification

	case EditOTP:
		if err := s.canVerify(); err != nil {
			return s, EffectNone, err
		}
		next, out := otp.Reduce(s.OTP, e.Event)
		if !out.Accepted {
			return s, EffectNone, nil
		}
		s.OTP = next
		s.Notice = Notice{}
		if out.Completed {
			return s, EffectSubmit, nil
		}
		return s, EffectNone, nil

	case SubmitOTP:
		if err := s.canVerify(); err != nil {
			return s, EffectNone, err
		}
		if !s.OTP.Complete() {
			s.Notice = Notice{Kind: NoticeValidation, Text: msgIncompleteCode}
			return s, EffectNone, invalid(msgIncompleteCode)
		}
		s.Busy = true
		s.Notice = Notice{}
		return s, EffectNone, nil

	case OTPVerified:
		return SignupState{Step: Verified, Notice: info(msgVerified)}, EffectNone, nil

	case OTPFailed:
		s.Busy = false
		s.Notice = NoticeFor(e.Err, msgNetwork)
		if isRemote(e.Err) {
			s.OTP = otp.State{}
		}
		return s, EffectNone, nil

	case Resend:
		if err := s.canVerify(); err != nil {
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

func (s SignupState) canVerify() error {
	if s.Step != AwaitingOTP {
		if s.Step == CollectingProfile {
			return ErrNoPendingVerification
		}
		return ErrWrongStep
	}
	if !s.hasPending() {
		return ErrNoPendingVerification
	}
	if s.Busy {
		return ErrBusy
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
