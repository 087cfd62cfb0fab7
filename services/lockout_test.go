package services

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRecordFailureCountsAttempts(t *testing.T) {
	now := time.Now()
	state := LockoutState{}

	for i := 1; i <= 3; i++ {
		decision := RecordFailure(state, now)
		if decision.Locked {
			t.Fatalf("attempt %d should not lock the account", i)
		}
		if decision.Updated.FailedAttempts != i {
			t.Errorf("expected %d failed attempts, got %d", i, decision.Updated.FailedAttempts)
		}
		want := fmt.Sprintf("Attempt %d/4", i)
		if !strings.Contains(decision.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, decision.Message)
		}
		state = decision.Updated
	}
}

func TestRecordFailureLocksOnFourth(t *testing.T) {
	now := time.Now()
	state := LockoutState{FailedAttempts: 3}

	decision := RecordFailure(state, now)
	if !decision.Locked {
		t.Fatal("fourth failure should lock the account")
	}
	if decision.Updated.LockoutUntil == nil {
		t.Fatal("expected LockoutUntil to be set")
	}
	if decision.Updated.FailedAttempts != 0 {
		t.Errorf("expected counter reset after lock, got %d", decision.Updated.FailedAttempts)
	}
	if got := decision.Updated.LockoutUntil.Sub(now); got != LockoutDuration {
		t.Errorf("expected %v lockout window, got %v", LockoutDuration, got)
	}
	if !strings.Contains(decision.Message, "Try again in 10 minutes") {
		t.Errorf("unexpected message: %q", decision.Message)
	}
}

func TestCheckLockoutDeniesWhileLocked(t *testing.T) {
	now := time.Now()
	until := now.Add(5 * time.Minute)
	state := LockoutState{LockoutUntil: &until}

	decision := CheckLockout(state, now)
	if decision.Allowed {
		t.Fatal("locked account should be denied")
	}
	if decision.RetryAfterMinutes != 5 {
		t.Errorf("expected 5 retry minutes for 5m remaining, got %d", decision.RetryAfterMinutes)
	}
	if !strings.Contains(decision.Message, "Account locked") {
		t.Errorf("unexpected message: %q", decision.Message)
	}
}

func TestCheckLockoutRetryMinutesCeiling(t *testing.T) {
	now := time.Now()

	tests := []struct {
		remaining time.Duration
		want      int
	}{
		{LockoutDuration, 10}, // a fresh lock never reports more than the window
		{9*time.Minute + 30*time.Second, 10},
		{9 * time.Minute, 9},
		{time.Second, 1},
	}
	for _, tt := range tests {
		until := now.Add(tt.remaining)
		decision := CheckLockout(LockoutState{LockoutUntil: &until}, now)
		if decision.RetryAfterMinutes != tt.want {
			t.Errorf("remaining %v: retry minutes = %d, want %d", tt.remaining, decision.RetryAfterMinutes, tt.want)
		}
		if decision.RetryAfterMinutes <= 0 || decision.RetryAfterMinutes > 10 {
			t.Errorf("remaining %v: retry minutes %d outside (0, 10]", tt.remaining, decision.RetryAfterMinutes)
		}
	}
}

func TestCheckLockoutDoesNotConsumeAttempts(t *testing.T) {
	now := time.Now()
	until := now.Add(2 * time.Minute)
	state := LockoutState{FailedAttempts: 2, LockoutUntil: &until}

	decision := CheckLockout(state, now)
	if decision.Updated.FailedAttempts != 2 {
		t.Errorf("locked attempt must not change the counter, got %d", decision.Updated.FailedAttempts)
	}
}

func TestCheckLockoutClearsExpiredWindow(t *testing.T) {
	now := time.Now()
	until := now.Add(-1 * time.Minute)
	state := LockoutState{FailedAttempts: 2, LockoutUntil: &until}

	decision := CheckLockout(state, now)
	if !decision.Allowed {
		t.Fatal("expired lockout should allow the attempt")
	}
	if decision.Updated.LockoutUntil != nil {
		t.Error("expected expired lockout to be cleared")
	}
}

func TestRecordSuccessResetsCounters(t *testing.T) {
	until := time.Now().Add(5 * time.Minute)
	state := LockoutState{FailedAttempts: 3, LockoutUntil: &until}

	updated := RecordSuccess(state)
	if updated.FailedAttempts != 0 {
		t.Errorf("expected counter reset, got %d", updated.FailedAttempts)
	}
	if updated.LockoutUntil != nil {
		t.Error("expected lockout cleared on success")
	}
}
