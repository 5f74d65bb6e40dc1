package domain

import "time"

// InviteCode is one ledger entry. ExpiresAt is nil for lifetime codes.
type InviteCode struct {
	Code         string
	CreatedAt    time.Time
	DurationDays *int
	ExpiresAt    *time.Time
	IsUsed       bool
	UsedBy       string // empty until first redemption
	ManualBound  bool   // set by an admin bind rather than a redemption
}

// Lifetime reports whether the code never expires.
func (c InviteCode) Lifetime() bool { return c.ExpiresAt == nil }

// ExpiredAt reports whether the code's expiry is strictly before now.
func (c InviteCode) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// CodeDuration is either a positive number of days or lifetime.
// MaxCodeDays bounds timed codes to roughly a century.
const MaxCodeDays = 36500

type CodeDuration struct {
	Days     int
	Lifetime bool
}

func LifetimeDuration() CodeDuration { return CodeDuration{Lifetime: true} }

func DaysDuration(days int) CodeDuration { return CodeDuration{Days: days} }

// ExpiresAt computes the absolute expiry from createdAt, or nil for lifetime.
func (d CodeDuration) ExpiresAt(createdAt time.Time) *time.Time {
	if d.Lifetime {
		return nil
	}
	t := createdAt.AddDate(0, 0, d.Days)
	return &t
}
