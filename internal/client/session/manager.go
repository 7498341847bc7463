package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidSession   = errors.New("invalid session record")
)

// Manager is the single owner of the client's session and the only writer
// to its Store. Each mutating call updates the store and memory under one
// lock: the store first, memory only once the store has accepted the change.
type Manager struct {
	store Store
	log   logging.Logger

	mu      sync.RWMutex
	session *models.Session
	loading bool

	initOnce sync.Once
	ready    chan struct{}
}

// NewManager returns a Manager in the loading state. Call Initialize once at
// startup before trusting IsAuthenticated.
func NewManager(store Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:   store,
		log:     log.With("component", "session"),
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Initialize restores the session from the store. It runs at most once;
// later calls return nil immediately. A half-present or unreadable record
// leaves the manager logged out and is removed from the store. The error
// reports store failures; the manager is usable either way.
func (m *Manager) Initialize(ctx context.Context) error {
	var err error
	m.initOnce.Do(func() {
		err = m.restore(ctx)
		close(m.ready)
	})
	return err
}

func (m *Manager) restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	stored, err := m.store.Load(ctx)
	switch {
	case err != nil && !errors.Is(err, ErrInvalidSession):
		m.log.Error(ctx, "loading session failed", "error", err)
		return fmt.Errorf("load session: %w", err)
	case err == nil && stored == nil:
		m.log.Debug(ctx, "no stored session")
		return nil
	case err == nil && stored.Valid():
		m.session = stored
		m.log.Info(ctx, "session restored", "user_id", stored.User.ID)
		return nil
	}

	m.log.Warn(ctx, "discarding invalid stored session")
	if cerr := m.store.Clear(ctx); cerr != nil {
		return fmt.Errorf("clear invalid session: %w", cerr)
	}
	return nil
}

// Loading is true until Initialize has finished.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Ready is closed once Initialize has finished.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// Login starts a session for user with token and persists it.
func (m *Manager) Login(ctx context.Context, user *models.User, token string) error {
	s, err := models.NewSession(token, user)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, *s); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.session = s
	m.log.Info(ctx, "logged in", "user_id", s.User.ID)
	return nil
}

// UpdateUser merges patch into the current user and persists the result.
// The token is never changed.
func (m *Manager) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.session.Valid() {
		return models.User{}, ErrNotAuthenticated
	}

	merged := m.session.User.Apply(patch)
	next := models.Session{Token: m.session.Token, User: &merged}
	if err := m.store.Save(ctx, next); err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}
	m.session = &next
	m.log.Debug(ctx, "user updated", "user_id", merged.ID)
	return merged, nil
}

// Logout forgets the session in memory and in the store. Calling it while
// logged out is not an error. Memory is cleared even if the store fails, so
// a failed logout never leaves the client authenticated; the store error is
// still returned.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasLoggedIn := m.session != nil
	m.session = nil

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing stored session failed", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	if wasLoggedIn {
		m.log.Info(ctx, "logged out")
	}
	return nil
}

// IsAuthenticated reports whether a token and a well-formed user are both
// held in memory. It never touches the store.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Valid()
}

// CurrentUser returns a copy of the logged-in user or ErrNotAuthenticated.
func (m *Manager) CurrentUser() (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.session.Valid() {
		return models.User{}, ErrNotAuthenticated
	}
	return *m.session.User, nil
}

// CurrentToken returns the bearer token or ErrNotAuthenticated.
func (m *Manager) CurrentToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.session.Valid() {
		return "", ErrNotAuthenticated
	}
	return m.session.Token, nil
}
