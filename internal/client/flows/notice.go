package flows

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeValidation
	NoticeRejected
	NoticeConnectivity
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeNone:
		return "none"
	case NoticeInfo:
		return "info"
	case NoticeValidation:
		return "validation"
	case NoticeRejected:
		return "rejected"
	case NoticeConnectivity:
		return "connectivity"
	default:
		return "unknown"
	}
}

// Notice is the single user-visible message of a flow. A flow shows at most
// one at a time, so a success and an error can never be shown together.
type Notice struct {
	Kind NoticeKind
	Text string
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool {
	return n.Kind == NoticeValidation || n.Kind == NoticeRejected || n.Kind == NoticeConnectivity
}

const (
	msgNetwork      = "Network error. Please check if the server is running."
	msgNetworkRetry = "Network error. Please try again."
)

func info(text string) Notice {
	return Notice{Kind: NoticeInfo, Text: text}
}

// NoticeFor converts an error from a flow step into what the user sees.
// Service rejections keep the server's text verbatim.
func NoticeFor(err error, connectivity string) Notice {
	var ve *ValidationError
	switch {
	case err == nil:
		return Notice{}
	case errors.As(err, &ve):
		return Notice{Kind: NoticeValidation, Text: ve.Message}
	case client.IsTransport(err):
		return Notice{Kind: NoticeConnectivity, Text: connectivity}
	}
	if re, ok := client.AsRemote(err); ok {
		return Notice{Kind: NoticeRejected, Text: re.Message}
	}
	return Notice{Kind: NoticeRejected, Text: err.Error()}
}

func isRemote(err error) bool {
	_, ok := client.AsRemote(err)
	return ok
}
