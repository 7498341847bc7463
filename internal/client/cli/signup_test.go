package cli

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/flows"
	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/stretchr/testify/require"
)

const signupLines = "Ann\nann@example.com\n555\n"

func TestSignup_VerifiesAndLogsIn(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"123456\n")
	stubPasswords(t, "secret1")

	require.NoError(t, a.Signup(context.Background()))

	require.Equal(t, []models.SignupRequest{{Name: "Ann", Email: "ann@example.com", Phone: "555", Password: "secret1"}}, fc.signups)
	require.True(t, a.isLoggedIn())
	tok, _ := a.sessions.CurrentToken()
	require.Equal(t, "T-signup", tok)

	s := out.String()
	require.Contains(t, s, "sent to ann@example.com")
	require.Contains(t, s, "Name:  Ann")
	require.Equal(t, flows.CollectingProfile, a.signup.State().Step)
}

func TestSignup_WrongCodeThenRight(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"000000\n123456\n")
	stubPasswords(t, "secret1")

	require.NoError(t, a.Signup(context.Background()))
	require.Contains(t, out.String(), "Error: Invalid or expired OTP")
	require.True(t, a.isLoggedIn())
}

func TestSignup_ShortCodeIsReportedLocally(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"123\n")
	stubPasswords(t, "secret1")

	err := a.Signup(context.Background())
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, out.String(), "Error: Please enter all 6 digits")
	require.False(t, a.isLoggedIn())
}

func TestSignup_BlankFieldRejectedBeforeNetwork(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, "Ann\n\n555\n")
	stubPasswords(t, "secret1")

	require.Error(t, a.Signup(context.Background()))
	require.Empty(t, fc.signups)
	require.Contains(t, out.String(), "Error: Please fill in all fields")
}

func TestSignup_ServerRejects(t *testing.T) {
	fc := newFakeClient()
	fc.signupErr = &client.RemoteError{Status: 400, Message: "User already exists"}
	a, out := newTestApp(t, fc, signupLines)
	stubPasswords(t, "secret1")

	require.Error(t, a.Signup(context.Background()))
	require.Contains(t, out.String(), "Error: User already exists")
	require.Equal(t, flows.CollectingProfile, a.signup.State().Step)
}

func TestVerify_ResendReplaysForm(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"resend\n123456\n")
	stubPasswords(t, "secret1")

	require.NoError(t, a.Signup(context.Background()))
	require.Len(t, fc.signups, 2)
	require.Equal(t, fc.signups[0], fc.signups[1])
	require.Contains(t, out.String(), "New OTP sent to your email!")
}

func TestVerify_PostponeAndResume(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"\n123456\n")
	stubPasswords(t, "secret1")

	require.NoError(t, a.Signup(context.Background()))
	require.Contains(t, out.String(), "Verification postponed.")
	require.Equal(t, flows.AwaitingOTP, a.signup.State().Step)
	require.False(t, a.isLoggedIn())

	require.NoError(t, a.Verify(context.Background()))
	require.True(t, a.isLoggedIn())
}

func TestVerify_WithoutPendingSignupGoesToSignup(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, "")

	err := a.Verify(context.Background())
	require.ErrorIs(t, err, io.EOF)
	require.Contains(t, out.String(), "No signup is awaiting verification.")
	require.Contains(t, out.String(), "Enter name")
}

func TestVerify_UnreachableKeepsCode(t *testing.T) {
	fc := newFakeClient()
	a, out := newTestApp(t, fc, signupLines+"123456\n")
	stubPasswords(t, "secret1")
	fc.verifyErr = client.ErrUnavailable

	require.ErrorIs(t, a.Signup(context.Background()), client.ErrUnavailable)
	require.Contains(t, out.String(), "Network error")

	st := a.signup.State()
	require.Equal(t, flows.AwaitingOTP, st.Step)
	require.Equal(t, "123456", st.OTP.Code())
	require.False(t, st.Busy)
}

func TestResend_WithoutPendingSignup(t *testing.T) {
	a, out := newTestApp(t, newFakeClient(), "")

	require.ErrorIs(t, a.Resend(context.Background()), flows.ErrNoPendingVerification)
	require.Contains(t, out.String(), "No signup is awaiting verification.")
}
