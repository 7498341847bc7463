package users

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Purpose separates signup codes from password reset codes for the same
// address.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeReset  Purpose = "reset"
)

const otpDigits = 6

type otpEntry struct {
	code    string
	expires time.Time
}

// Outbox stands in for the mail server: it remembers the last code issued
// per address and purpose.
type Outbox struct {
	mu      sync.Mutex
	entries map[string]otpEntry
}

func NewOutbox() *Outbox {
	return &Outbox{entries: make(map[string]otpEntry)}
}

func outboxKey(p Purpose, email string) string {
	return string(p) + ":" + emailKey(email)
}

func (o *Outbox) put(p Purpose, email, code string, expires time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries[outboxKey(p, email)] = otpEntry{code: code, expires: expires}
}

// take consumes the code if it matches and has not expired.
func (o *Outbox) take(p Purpose, email, code string, now time.Time) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	key := outboxKey(p, email)
	e, ok := o.entries[key]
	if !ok || now.After(e.expires) || e.code != code {
		return false
	}
	delete(o.entries, key)
	return true
}

// Last returns the most recent code sent to email for p.
func (o *Outbox) Last(p Purpose, email string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.entries[outboxKey(p, email)]
	return e.code, ok
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
