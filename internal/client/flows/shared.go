package flows

import "github.com/dmitrijs2005/gophauth/internal/client/otp"

// Events understood by both flows.
type (
	// Enter is sent when the user arrives at the verification step, which
	// is only valid with a pending email.
	Enter struct{}
	// EditOTP forwards one keystroke, backspace, paste or focus change to
	// the OTP boxes.
	EditOTP struct{ Event otp.Event }
	// Resend asks for a new code for the pending email.
	Resend       struct{}
	Resent       struct{}
	ResendFailed struct{ Err error }

	release struct{}
)

func (Enter) signupEvent()        {}
func (EditOTP) signupEvent()      {}
func (Resend) signupEvent()       {}
func (Resent) signupEvent()       {}
func (ResendFailed) signupEvent() {}
func (release) signupEvent()      {}

func (Enter) resetEvent()        {}
func (EditOTP) resetEvent()      {}
func (Resend) resetEvent()       {}
func (Resent) resetEvent()       {}
func (ResendFailed) resetEvent() {}
func (release) resetEvent()      {}

const msgResent = "New OTP sent to your email!"
