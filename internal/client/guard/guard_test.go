package guard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct {
	loading bool
	authed  bool
	ready   chan struct{}
}

func (f *fakeState) Loading() bool          { return f.loading }
func (f *fakeState) IsAuthenticated() bool  { return f.authed }
func (f *fakeState) Ready() <-chan struct{} { return f.ready }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		state   fakeState
		want    Decision
		target  string
		replace bool
	}{
		{"loading wins over authed", fakeState{loading: true, authed: true}, Pending, "", false},
		{"loading and logged out", fakeState{loading: true}, Pending, "", false},
		{"authorized", fakeState{authed: true}, Authorized, "", false},
		{"redirected", fakeState{}, Redirected, LoginRoute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(&tt.state, "profile")
			assert.Equal(t, "profile", got.Route)
			assert.Equal(t, tt.want, got.Decision)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.replace, got.ReplaceHistory)
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "authorized", Authorized.String())
	assert.Equal(t, "redirected", Redirected.String())
	assert.Equal(t, "unknown", Decision(42).String())
}

func TestAwait_Cancelled(t *testing.T) {
	s := &fakeState{loading: true, ready: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	got, err := Await(ctx, s, "profile")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Pending, got.Decision)
}

func TestAwait_FreshStoreRedirectsToLogin(t *testing.T) {
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "g.db"))
	require.NoError(t, err)
	defer db.Close()

	m := session.NewManager(session.NewMetadataStore(db), nil)
	assert.Equal(t, Pending, Evaluate(m, "profile").Decision)

	done := make(chan Result, 1)
	go func() {
		r, _ := Await(ctx, m, "profile")
		done <- r
	}()

	require.NoError(t, m.Initialize(ctx))

	select {
	case r := <-done:
		assert.Equal(t, Redirected, r.Decision)
		assert.Equal(t, LoginRoute, r.Target)
		assert.True(t, r.ReplaceHistory)
	case <-time.After(2 * time.Second):
		t.Fatal("Await did not return after Initialize")
	}
}
