// Package users implements the account rules of the stub service: signup
// with an emailed code, password login, password reset and the profile.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/stubserver/auth"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// The error texts are sent to clients as is.
var (
	ErrUserExists         = errors.New("User already exists")
	ErrNotFound           = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotVerified        = errors.New("Please verify your email first")
	ErrInvalidOTP         = errors.New("Invalid or expired OTP")
	ErrMissingFields      = errors.New("All fields are required")
	ErrWeakPassword       = errors.New("Password must be at least 6 characters")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrCurrentPassword    = errors.New("Current password is required to change password")
	ErrEmptyName          = errors.New("Name cannot be empty")
	ErrInternal           = errors.New("Internal server error")
)

type Options struct {
	JWTSecret []byte
	TokenTTL  time.Duration
	OTPTTL    time.Duration
}

type Service struct {
	repo    Repository
	outbox  *Outbox
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
	newCode func() (string, error)
}

func NewService(repo Repository, outbox *Outbox, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	return &Service{
		repo:    repo,
		outbox:  outbox,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		newCode: randomCode,
	}
}

// Outbox exposes the codes the service has "mailed".
func (s *Service) Outbox() *Outbox {
	return s.outbox
}

type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Signup creates an unverified account and sends a signup code. Signing up
// again before verifying replaces the pending account and sends a new code.
func (s *Service) Signup(ctx context.Context, in SignupInput) error {
	if blank(in.Name) || blank(in.Email) || blank(in.Phone) || in.Password == "" {
		return ErrMissingFields
	}
	if common.PasswordTooShort(in.Password) {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil && existing.Verified:
		return ErrUserExists
	case err == nil:
		existing.Name = strings.TrimSpace(in.Name)
		existing.Phone = strings.TrimSpace(in.Phone)
		existing.PasswordHash = hash
		if err := s.repo.Update(ctx, existing); err != nil {
			return ErrInternal
		}
	case errors.Is(err, ErrNotFound):
		_, err := s.repo.Create(ctx, &User{
			ID:           ulid.Make().String(),
			Name:         strings.TrimSpace(in.Name),
			Email:        strings.TrimSpace(in.Email),
			Phone:        strings.TrimSpace(in.Phone),
			PasswordHash: hash,
			CreatedAt:    s.now(),
		})
		if err != nil {
			return err
		}
	default:
		return ErrInternal
	}

	return s.sendCode(PurposeSignup, in.Email)
}

// VerifySignup confirms the signup code and returns the account with a
// fresh access token.
func (s *Service) VerifySignup(ctx context.Context, email, code string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidOTP
	}
	if !s.outbox.take(PurposeSignup, email, code, s.now()) {
		return nil, "", ErrInvalidOTP
	}

	u.Verified = true
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, "", ErrInternal
	}
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, "", ErrNotVerified
	}
	return s.issue(u)
}

// ForgotPassword sends a reset code to a verified account.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil || !u.Verified {
		return ErrNotFound
	}
	return s.sendCode(PurposeReset, email)
}

func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if common.PasswordTooShort(newPassword) {
		return ErrWeakPassword
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return ErrInvalidOTP
	}
	if !s.outbox.take(PurposeReset, email, code, s.now()) {
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	u.PasswordHash = hash
	if err := s.repo.Update(ctx, u); err != nil {
		return ErrInternal
	}
	s.logger.Info("password reset", zap.String("user_id", u.ID))
	return nil
}

// Authenticate maps a bearer token to the ID of an existing user.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	id, err := auth.GetUserIDFromToken(token, s.opts.JWTSecret)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.GetUserByID(ctx, id); err != nil {
		return "", auth.ErrInvalidToken
	}
	return id, nil
}

func (s *Service) Profile(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile applies ch. A new password needs the current one.
func (s *Service) UpdateProfile(ctx context.Context, id string, ch ProfileChange) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ch.Name != nil {
		if blank(*ch.Name) {
			return nil, ErrEmptyName
		}
		u.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Phone != nil {
		u.Phone = strings.TrimSpace(*ch.Phone)
	}
	if ch.ProfileImage != nil {
		u.ProfileImage = strings.TrimSpace(*ch.ProfileImage)
	}

	if ch.NewPassword != nil {
		if ch.CurrentPassword == nil || *ch.CurrentPassword == "" {
			return nil, ErrCurrentPassword
		}
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(*ch.CurrentPassword)) != nil {
			return nil, ErrWrongPassword
		}
		if common.PasswordTooShort(*ch.NewPassword) {
			return nil, ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*ch.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrInternal
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, ErrInternal
	}
	return u, nil
}

func (s *Service) issue(u *User) (*User, string, error) {
	token, err := auth.GenerateToken(u.ID, s.opts.JWTSecret, s.opts.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return u, token, nil
}

func (s *Service) sendCode(p Purpose, email string) error {
	code, err := s.newCode()
	if err != nil {
		return ErrInternal
	}
	s.outbox.put(p, email, code, s.now().Add(s.opts.OTPTTL))
	// The stub has no mail server; the log line is the delivery.
	s.logger.Info("otp issued",
		zap.String("purpose", string(p)),
		zap.String("email", email),
		zap.String("otp", code),
	)
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
