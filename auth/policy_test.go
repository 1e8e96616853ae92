package auth

import (
	"testing"
	"time"
)

func TestRegisterFailedLogin(t *testing.T) {
	now := time.Now()
	lockFor := 15 * time.Minute

	attempts := 0
	var lockUntil time.Time
	for i := 1; i < MaxFailedLogins; i++ {
		attempts, lockUntil = RegisterFailedLogin(attempts, lockUntil, now, lockFor)
		if attempts != i {
			t.Fatalf("after %d failures: counter = %d", i, attempts)
		}
		if !lockUntil.IsZero() {
			t.Fatalf("locked after only %d failures", i)
		}
	}

	// The fifth failure trips the lock.
	attempts, lockUntil = RegisterFailedLogin(attempts, lockUntil, now, lockFor)
	if attempts != MaxFailedLogins {
		t.Fatalf("counter = %d, want %d", attempts, MaxFailedLogins)
	}
	if lockUntil.IsZero() {
		t.Fatal("expected lock after reaching the threshold")
	}
	if got, want := lockUntil, now.Add(lockFor); !got.Equal(want) {
		t.Errorf("lock expiry = %v, want %v", got, want)
	}

	// Failures past the threshold keep the account locked.
	_, relock := RegisterFailedLogin(attempts, now.Add(time.Minute), now, lockFor)
	if relock.IsZero() {
		t.Error("expected lock to persist past the threshold")
	}
}

func TestRegisterFailedLoginResetsAfterLockExpiry(t *testing.T) {
	now := time.Now()
	lockFor := 15 * time.Minute
	expired := now.Add(-time.Minute)

	// One bad password after the lock has lapsed starts a fresh window
	// instead of re-locking straight away.
	attempts, lockUntil := RegisterFailedLogin(MaxFailedLogins, expired, now, lockFor)
	if attempts != 1 {
		t.Errorf("counter = %d after expired lock, want 1", attempts)
	}
	if !lockUntil.IsZero() {
		t.Error("expired lock must not re-lock on the first new failure")
	}

	// A lock that is still in force keeps counting instead of resetting.
	attempts, lockUntil = RegisterFailedLogin(MaxFailedLogins, now.Add(time.Minute), now, lockFor)
	if attempts != MaxFailedLogins+1 {
		t.Errorf("counter = %d under an active lock, want %d", attempts, MaxFailedLogins+1)
	}
	if lockUntil.IsZero() {
		t.Error("active lock must be extended, not cleared")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"longenough1", true},
		{"short1", false},
		{"allletters", false},
		{"12345678", false},
		{"", false},
		{"Pa55word", true},
	}
	for _, c := range cases {
		errs := ValidatePassword(c.password)
		if ok := len(errs) == 0; ok != c.ok {
			t.Errorf("ValidatePassword(%q): errs=%v, want ok=%v", c.password, errs, c.ok)
		}
	}
}

func TestValidateSignup(t *testing.T) {
	if errs := ValidateSignup("Ada", "a@b.com", "longenough1"); len(errs) != 0 {
		t.Errorf("valid signup rejected: %v", errs)
	}

	if errs := ValidateSignup("A", "a@b.com", "longenough1"); len(errs) == 0 {
		t.Error("expected single-character name to be rejected")
	}
	if errs := ValidateSignup("Ada", "not-an-email", "longenough1"); len(errs) == 0 {
		t.Error("expected malformed email to be rejected")
	}
	if errs := ValidateSignup("Ada", "a@b.com", "weak"); len(errs) == 0 {
		t.Error("expected weak password to be rejected")
	}
}

func TestLockoutDurationDefault(t *testing.T) {
	t.Setenv("LOCKOUT_DURATION", "")
	if got := LockoutDuration(); got != 15*time.Minute {
		t.Errorf("default lockout = %v, want 15m", got)
	}

	t.Setenv("LOCKOUT_DURATION", "2h")
	if got := LockoutDuration(); got != 2*time.Hour {
		t.Errorf("configured lockout = %v, want 2h", got)
	}

	t.Setenv("LOCKOUT_DURATION", "garbage")
	if got := LockoutDuration(); got != 15*time.Minute {
		t.Errorf("invalid config should fall back to 15m, got %v", got)
	}
}
