package auth

import (
	"os"
	"regexp"
	"strings"
	"time"
	"unicode"
)

const (
	// MaxFailedLogins wrong passwords in a row lock the account for
	// LockoutDuration().
	MaxFailedLogins = 5

	defaultLockout = 15 * time.Minute
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LockoutDuration reads LOCKOUT_DURATION from the environment (e.g. "15m",
// "2h"), falling back to 15 minutes.
func LockoutDuration() time.Duration {
	if v := os.Getenv("LOCKOUT_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultLockout
}

// RegisterFailedLogin advances the failed-attempt counter and returns the
// new counter plus the lock expiry (zero while under the threshold). An
// expired lock starts a fresh counting window, so one wrong password after
// the lockout does not immediately re-lock the account. Kept pure so the
// policy is testable without a database.
func RegisterFailedLogin(attempts int, lockUntil, now time.Time, lockFor time.Duration) (int, time.Time) {
	if !lockUntil.IsZero() && now.After(lockUntil) {
		attempts = 0
	}
	attempts++
	if attempts >= MaxFailedLogins {
		return attempts, now.Add(lockFor)
	}
	return attempts, time.Time{}
}

// ValidatePassword enforces the signup password policy: at least 8
// characters with at least one letter and one digit.
func ValidatePassword(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		errs = append(errs, "password must contain a letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain a digit")
	}
	return errs
}

// ValidateSignup checks the full signup payload and returns field-level
// messages suitable for the 400 errors array.
func ValidateSignup(name, email, password string) []string {
	var errs []string

	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		errs = append(errs, "name must be between 2 and 50 characters")
	}
	if !emailRe.MatchString(email) {
		errs = append(errs, "invalid email address")
	}
	errs = append(errs, ValidatePassword(password)...)
	return errs
}
