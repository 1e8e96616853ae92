package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestComputeTier(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, TierBronze},
		{99, TierBronze},
		{100, TierSilver},
		{499, TierSilver},
		{500, TierGold},
		{999, TierGold},
		{1000, TierPlatinum},
		{25000, TierPlatinum},
	}

	for _, c := range cases {
		if got := ComputeTier(c.points); got != c.want {
			t.Errorf("ComputeTier(%d) = %q, want %q", c.points, got, c.want)
		}
	}
}

func TestUserJSONOmitsCredentials(t *testing.T) {
	u := User{
		UserID:              "u1",
		Email:               "a@b.com",
		Password:            "$2a$12$secret-hash",
		FailedLoginAttempts: 3,
		LockUntil:           time.Now().Add(time.Hour),
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "secret-hash") || strings.Contains(body, `"password"`) {
		t.Errorf("serialized user leaks password: %s", body)
	}
	if strings.Contains(body, "failed_login_attempts") || strings.Contains(body, "lock_until") {
		t.Errorf("serialized user leaks lockout state: %s", body)
	}
}

func TestIsLocked(t *testing.T) {
	now := time.Now()

	u := User{LockUntil: now.Add(10 * time.Minute)}
	if !u.IsLocked(now) {
		t.Error("expected user with future lock_until to be locked")
	}

	u.LockUntil = now.Add(-time.Minute)
	if u.IsLocked(now) {
		t.Error("expected user with expired lock_until to be unlocked")
	}

	var fresh User
	if fresh.IsLocked(now) {
		t.Error("expected zero-value user to be unlocked")
	}
}
