package flows

import "errors"

var (
	// ErrBusy is returned when a submission is attempted while another call
	// of the same flow is still in flight. No network call is made.
	ErrBusy = errors.New("flow is busy")
	// ErrNoPendingVerification means the verification step was entered
	// without an email to verify; the flow has been sent back to its first
	// step.
	ErrNoPendingVerification = errors.New("no pending verification")
	// ErrWrongStep is returned for an event that makes no sense in the
	// current step.
	ErrWrongStep = errors.New("not allowed in current step")
)

// ValidationError is a local input problem. It never reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
