package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(NewInMemoryRepository(), NewOutbox(), Options{
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
		OTPTTL:    time.Minute,
	}, nil)
	codes := []string{"111111", "222222", "333333", "444444"}
	s.newCode = func() (string, error) {
		c := codes[0]
		codes = append(codes[1:], c)
		return c, nil
	}
	return s
}

var ann = SignupInput{Name: "Ann", Email: "ann@example.com", Phone: "555", Password: "secret1"}

func signedUp(t *testing.T, s *Service) *User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Signup(ctx, ann))
	code, ok := s.Outbox().Last(PurposeSignup, ann.Email)
	require.True(t, ok)
	u, _, err := s.VerifySignup(ctx, ann.Email, code)
	require.NoError(t, err)
	return u
}

func TestSignupAndVerify(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Signup(ctx, ann))

	_, _, err := s.Login(ctx, ann.Email, ann.Password)
	require.ErrorIs(t, err, ErrNotVerified)

	_, _, err = s.VerifySignup(ctx, ann.Email, "000000")
	require.ErrorIs(t, err, ErrInvalidOTP)

	u, token, err := s.VerifySignup(ctx, ann.Email, "111111")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, u.ID)
	assert.True(t, u.Verified)

	id, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	// A code works once.
	_, _, err = s.VerifySignup(ctx, ann.Email, "111111")
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestSignup_Validation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Signup(ctx, SignupInput{Name: "Ann", Email: " ", Phone: "1", Password: "secret1"}), ErrMissingFields)
	require.ErrorIs(t, s.Signup(ctx, SignupInput{Name: "Ann", Email: "a@b.c", Phone: "1", Password: "abc"}), ErrWeakPassword)
}

func TestSignup_ResendReplacesCode(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Signup(ctx, ann))
	require.NoError(t, s.Signup(ctx, ann))

	code, _ := s.Outbox().Last(PurposeSignup, ann.Email)
	assert.Equal(t, "222222", code)

	_, _, err := s.VerifySignup(ctx, ann.Email, "111111")
	require.ErrorIs(t, err, ErrInvalidOTP)
	_, _, err = s.VerifySignup(ctx, ann.Email, "222222")
	require.NoError(t, err)
}

func TestSignup_ExistingVerifiedUser(t *testing.T) {
	s := newTestService(t)
	signedUp(t, s)
	require.ErrorIs(t, s.Signup(context.Background(), ann), ErrUserExists)
}

func TestVerify_ExpiredCode(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Signup(ctx, ann))
	now = now.Add(2 * time.Minute)

	_, _, err := s.VerifySignup(ctx, ann.Email, "111111")
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestLogin(t *testing.T) {
	s := newTestService(t)
	signedUp(t, s)
	ctx := context.Background()

	_, _, err := s.Login(ctx, ann.Email, "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	u, token, err := s.Login(ctx, "ANN@example.com", ann.Password)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.NotEmpty(t, token)
}

func TestPasswordReset(t *testing.T) {
	s := newTestService(t)
	signedUp(t, s)
	ctx := context.Background()

	require.ErrorIs(t, s.ForgotPassword(ctx, "nobody@example.com"), ErrNotFound)
	require.NoError(t, s.ForgotPassword(ctx, ann.Email))

	code, ok := s.Outbox().Last(PurposeReset, ann.Email)
	require.True(t, ok)

	require.ErrorIs(t, s.ResetPassword(ctx, ann.Email, code, "abc"), ErrWeakPassword)
	require.ErrorIs(t, s.ResetPassword(ctx, ann.Email, "000000", "newpass"), ErrInvalidOTP)
	require.NoError(t, s.ResetPassword(ctx, ann.Email, code, "newpass"))

	_, _, err := s.Login(ctx, ann.Email, ann.Password)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.Login(ctx, ann.Email, "newpass")
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestService(t)
	u := signedUp(t, s)
	ctx := context.Background()

	name, image := "Ann Lee", "http://img/1.png"
	got, err := s.UpdateProfile(ctx, u.ID, ProfileChange{Name: &name, ProfileImage: &image})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Name)
	assert.Equal(t, "555", got.Phone)
	assert.Equal(t, image, got.ProfileImage)
	assert.Equal(t, ann.Email, got.Email)

	empty := " "
	_, err = s.UpdateProfile(ctx, u.ID, ProfileChange{Name: &empty})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateProfile_Password(t *testing.T) {
	s := newTestService(t)
	u := signedUp(t, s)
	ctx := context.Background()

	newPw, wrong, current := "newpass", "nope", ann.Password

	_, err := s.UpdateProfile(ctx, u.ID, ProfileChange{NewPassword: &newPw})
	require.ErrorIs(t, err, ErrCurrentPassword)

	_, err = s.UpdateProfile(ctx, u.ID, ProfileChange{NewPassword: &newPw, CurrentPassword: &wrong})
	require.ErrorIs(t, err, ErrWrongPassword)

	got, err := s.UpdateProfile(ctx, u.ID, ProfileChange{NewPassword: &newPw, CurrentPassword: &current})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword(got.PasswordHash, []byte(newPw)))
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s := newTestService(t)
	other := newTestService(t)
	u := signedUp(t, other)

	_, token, err := other.issue(u)
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), token)
	require.Error(t, err)
}
