// Package lockout implements the failed-authentication lockout state machine.
//
// The state machine is pure: it never touches storage or the clock itself.
// Callers load the state from an account record, feed it the outcome of a
// credential check and persist whatever comes back.
package lockout

import (
	"time"

	"github.com/sonu598/bank-account-server/internal/domain"
)

const (
	// MaxFailedAttempts is the number of failed credential checks that locks an account.
	MaxFailedAttempts = 3
	// Duration is how long an account stays locked before it unlocks automatically.
	Duration = 24 * time.Hour
)

// State holds the lockout data of one account.
// A zero LockedAt means the account is unlocked.
type State struct {
	FailedAttempts int32
	LockedAt       *time.Time
}

// Active reports whether the lock window is still open at the given time.
func (s State) Active(now time.Time) bool {
	return s.LockedAt != nil && now.Sub(*s.LockedAt) < Duration
}

// Begin evaluates the lock before a credential check.
//
// While the lock window is open it returns domain.ErrAccountLocked and the
// state unchanged; the attempt is not counted. Once the window has elapsed
// the state resets so the attempt is evaluated as if the account had never
// been locked.
func (s State) Begin(now time.Time) (State, error) {
	if s.LockedAt == nil {
		return s, nil
	}

	if s.Active(now) {
		return s, domain.ErrAccountLocked
	}

	return State{}, nil
}

// Fail records a failed credential check.
//
// Reaching MaxFailedAttempts locks the account and returns
// domain.ErrAccountLocked. Otherwise the error is a domain.CredentialsError
// carrying the attempts left.
func (s State) Fail(now time.Time) (State, error) {
	next := State{FailedAttempts: s.FailedAttempts + 1}

	if next.FailedAttempts >= MaxFailedAttempts {
		next.LockedAt = &now
		return next, domain.ErrAccountLocked
	}

	return next, &domain.CredentialsError{AttemptsRemaining: MaxFailedAttempts - next.FailedAttempts}
}

// Succeed resets the state after a successful credential check.
func (s State) Succeed() State {
	return State{}
}
