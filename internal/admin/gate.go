// Package admin implements the bounded-attempt password gate guarding
// bridge-registry mutation. It is a client-parity throttle, not a
// security boundary: the original app exposes the same three-attempt
// lockout on its admin screen.
package admin

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxAttempts is the number of consecutive failures before the gate
// locks.
const MaxAttempts = 3

// ErrUnauthorized is returned when a gated operation is attempted while
// the gate is not authenticated.
var ErrUnauthorized = errors.New("admin authentication required")

// SecretVerifier checks a submitted admin password. It exists so a real
// secret store can replace the static secret without touching the gate's
// state machine.
type SecretVerifier interface {
	Verify(password string) bool
}

// BcryptVerifier compares submissions against a bcrypt hash.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier hashes the configured secret once at startup.
func NewBcryptVerifier(secret string) (*BcryptVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &BcryptVerifier{hash: hash}, nil
}

func (v *BcryptVerifier) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
}

// Gate is the admin session state machine: Idle until a successful
// attempt, Authenticated afterwards. Three consecutive failures lock it
// until Reset.
type Gate struct {
	mu            sync.Mutex
	verifier      SecretVerifier
	authenticated bool
	failures      int
}

func NewGate(verifier SecretVerifier) *Gate {
	return &Gate{verifier: verifier}
}

// Attempt checks the password. While locked, every attempt fails with
// zero remaining — a correct password does not unlock the gate. On
// success the failure counter resets and the gate transitions to
// Authenticated.
func (g *Gate) Attempt(password string) (ok bool, remaining int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failures >= MaxAttempts {
		return false, 0
	}

	if g.verifier.Verify(password) {
		g.authenticated = true
		g.failures = 0
		return true, MaxAttempts
	}

	g.failures++
	return false, MaxAttempts - g.failures
}

// Authenticated reports whether the gate is open.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Locked reports whether the attempt limit has been reached.
func (g *Gate) Locked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures >= MaxAttempts
}

// Reset returns the gate to Idle and clears the failure counter. Used by
// admin logout and by a fresh client session.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
	g.failures = 0
}
