package flows

import (
	"context"
	"sync"
)

// Effect is work the reducer asks its controller to perform next.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSubmit asks for the OTP to be submitted right away.
	EffectSubmit
)

type reducer[S, E any] func(S, E) (S, Effect, error)

// machine holds one flow's state under a mutex. Network calls run outside
// the lock; gen identifies the flow instance so that a response arriving
// after the flow was abandoned is dropped instead of applied.
type machine[S, E any] struct {
	mu     sync.Mutex
	state  S
	gen    uint64
	reduce reducer[S, E]
}

func (m *machine[S, E]) current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine[S, E]) apply(e E) (S, Effect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, eff, err := m.reduce(m.state, e)
	m.state = next
	return next, eff, err
}

func (m *machine[S, E]) reset(s S) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.gen++
}

// call applies start, which marks the flow busy, runs fn without the lock
// and then applies the event fn returned. If fn panics, release is applied
// instead so the busy flag is always cleared.
func (m *machine[S, E]) call(ctx context.Context, start, release E, fn func(context.Context, S) (E, error)) error {
	m.mu.Lock()
	snapshot, _, err := m.reduce(m.state, start)
	m.state = snapshot
	gen := m.gen
	m.mu.Unlock()
	if err != nil {
		return err
	}

	result := release
	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		m.state, _, _ = m.reduce(m.state, result)
	}()

	result, err = fn(ctx, snapshot)
	return err
}
