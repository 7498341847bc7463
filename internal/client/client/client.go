package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

// Client is the boundary to the remote account service. Messages returned by
// the service are passed through verbatim.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Signup registers the account and triggers OTP delivery.
	Signup(ctx context.Context, req models.SignupRequest) (string, error)
	// VerifyOTP checks a signup code and returns the new session.
	VerifyOTP(ctx context.Context, email, otp string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)

	GetProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error)
}
