// Package reward holds the pure payout and cooldown calculators.
package reward

import (
	"math/rand"
	"time"

	"github.com/coinquest/engine/internal/domain"
)

// Compute returns a uniformly distributed payout inside the game's reward
// band, inclusive. Educational games always pay 0. The draw is plain
// entertainment randomness, not a fairness-grade RNG.
func Compute(id domain.GameID) (int64, error) {
	info, ok := domain.Games[id]
	if !ok {
		return 0, domain.ErrValidation("unknown game: " + string(id))
	}
	if info.Educational {
		return 0, nil
	}
	return info.Reward.Min + rand.Int63n(info.Reward.Max-info.Reward.Min+1), nil
}

// CooldownExpiry returns the moment a cooldown started at now lapses.
func CooldownExpiry(now time.Time, d time.Duration) time.Time {
	return now.Add(d)
}

// IsOnCooldown reports whether expiry is set and still in the future.
func IsOnCooldown(expiry *time.Time, now time.Time) bool {
	return expiry != nil && expiry.After(now)
}
