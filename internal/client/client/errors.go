package client

import "errors"

var (
	// ErrUnavailable covers every transport failure: unreachable host,
	// timeout, or a response body that is not the expected JSON.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means an authenticated call was refused because the
	// bearer token is invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
)

// RemoteError is a business-rule rejection (success:false). Message is the
// server's text, or a fallback when the server sent none.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// AsRemote returns the RemoteError inside err, if any.
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
