package services

import (
	"fmt"
	"time"
)

const (
	// MaxFailedAttempts is the number of consecutive bad passwords that
	// trigger an account lockout
	MaxFailedAttempts = 4
	// LockoutDuration is how long a triggered lockout lasts
	LockoutDuration = 10 * time.Minute
)

// LockoutState is the per-account lockout counters as loaded from the
// users table
type LockoutState struct {
	FailedAttempts int
	LockoutUntil   *time.Time
}

// LockoutDecision is the outcome of applying one login attempt to the
// lockout state machine. Callers persist the updated state and return
// Message with the matching HTTP status.
type LockoutDecision struct {
	// Allowed is true only when credentials may be checked at all
	Allowed bool
	// Locked is true when the account is serving a lockout window
	Locked bool
	// RetryAfterMinutes is set when Locked, the ceiling of the time
	// left: "9m30s left" reports 10 minutes, "9m exactly" reports 9
	RetryAfterMinutes int
	// Updated is the state to persist
	Updated LockoutState
	// Message is the client-facing error text for denied attempts
	Message string
}

// CheckLockout inspects the state before the password is verified. A
// locked account rejects the attempt without consuming it.
func CheckLockout(state LockoutState, now time.Time) LockoutDecision {
	if state.LockoutUntil != nil && now.Before(*state.LockoutUntil) {
		remaining := state.LockoutUntil.Sub(now)
		minutes := int((remaining + time.Minute - 1) / time.Minute)
		return LockoutDecision{
			Allowed:           false,
			Locked:            true,
			RetryAfterMinutes: minutes,
			Updated:           state,
			Message:           fmt.Sprintf("Account locked due to repeated failed attempts. Try again in %d minutes.", minutes),
		}
	}

	// An expired lockout window clears itself on the next attempt
	if state.LockoutUntil != nil {
		state.LockoutUntil = nil
	}

	return LockoutDecision{Allowed: true, Updated: state}
}

// RecordFailure applies one wrong-password attempt. The fourth
// consecutive failure starts the lockout window and resets the counter
// so the next window starts fresh.
func RecordFailure(state LockoutState, now time.Time) LockoutDecision {
	state.FailedAttempts++

	if state.FailedAttempts >= MaxFailedAttempts {
		until := now.Add(LockoutDuration)
		state.FailedAttempts = 0
		state.LockoutUntil = &until
		minutes := int(LockoutDuration / time.Minute)
		return LockoutDecision{
			Allowed: false,
			Locked:  true,
			Updated: state,
			Message: fmt.Sprintf("Account locked due to repeated failed attempts. Try again in %d minutes.", minutes),
		}
	}

	return LockoutDecision{
		Allowed: false,
		Updated: state,
		Message: fmt.Sprintf("Invalid email or password. Attempt %d/%d", state.FailedAttempts, MaxFailedAttempts),
	}
}

// RecordSuccess clears the counters after a correct password
func RecordSuccess(state LockoutState) LockoutState {
	state.FailedAttempts = 0
	state.LockoutUntil = nil
	return state
}
