// Package guard gates commands that need a logged-in user.
package guard

import "context"

// LoginRoute is where unauthenticated users are sent.
const LoginRoute = "login"

// Decision is the outcome of evaluating a guarded route.
type Decision int

const (
	// Pending means the session is still being restored; show a placeholder
	// and decide nothing yet.
	Pending Decision = iota
	Authorized
	Redirected
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	case Redirected:
		return "redirected"
	default:
		return "unknown"
	}
}

// SessionState is the part of the session manager the guard reads.
type SessionState interface {
	Loading() bool
	IsAuthenticated() bool
}

// Readiness is implemented by session managers that can signal the end of
// their loading window.
type Readiness interface {
	SessionState
	Ready() <-chan struct{}
}

// Result is one navigation's verdict. Target and ReplaceHistory are set only
// when Decision is Redirected.
type Result struct {
	Route          string
	Decision       Decision
	Target         string
	ReplaceHistory bool
}

// Evaluate decides a single navigation to route.
func Evaluate(s SessionState, route string) Result {
	switch {
	case s.Loading():
		return Result{Route: route, Decision: Pending}
	case s.IsAuthenticated():
		return Result{Route: route, Decision: Authorized}
	default:
		return Result{Route: route, Decision: Redirected, Target: LoginRoute, ReplaceHistory: true}
	}
}

// Await blocks until s has finished loading and then evaluates route. If ctx
// ends first the result is Pending together with the context error.
func Await(ctx context.Context, s Readiness, route string) (Result, error) {
	select {
	case <-s.Ready():
		return Evaluate(s, route), nil
	case <-ctx.Done():
		return Result{Route: route, Decision: Pending}, ctx.Err()
	}
}
