package models

import "time"

// Loyalty tiers, ordered. A user's tier is always the highest tier whose
// threshold does not exceed their points; recompute with ComputeTier after
// every loyaltyPoints mutation.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID              string    `json:"userid" bson:"userid"`
	Name                string    `json:"name" bson:"name"`
	Email               string    `json:"email" bson:"email"`
	Password            string    `json:"-" bson:"password"`
	Role                string    `json:"role" bson:"role"`
	IsActive            bool      `json:"is_active" bson:"is_active"`
	Address             string    `json:"address,omitempty" bson:"address,omitempty"`
	CO2Saved            float64   `json:"co2_saved" bson:"co2_saved"`
	WaterSaved          float64   `json:"water_saved" bson:"water_saved"`
	UnitsRecycled       int       `json:"units_recycled" bson:"units_recycled"`
	LoyaltyPoints       int       `json:"loyalty_points" bson:"loyalty_points"`
	Tier                string    `json:"tier" bson:"tier"`
	FailedLoginAttempts int       `json:"-" bson:"failed_login_attempts"`
	LockUntil           time.Time `json:"-" bson:"lock_until,omitempty"`
	LastLogin           time.Time `json:"last_login" bson:"last_login"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

var tierThresholds = []struct {
	Tier   string
	Points int
}{
	{TierPlatinum, 1000},
	{TierGold, 500},
	{TierSilver, 100},
	{TierBronze, 0},
}

// ComputeTier returns the highest tier whose threshold is <= points.
func ComputeTier(points int) string {
	for _, t := range tierThresholds {
		if points >= t.Points {
			return t.Tier
		}
	}
	return TierBronze
}

// IsLocked reports whether the account is currently locked out.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil.After(now)
}
