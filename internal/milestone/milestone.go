// Package milestone evaluates cumulative-earnings thresholds.
package milestone

import (
	"time"

	"github.com/coinquest/engine/internal/domain"
)

// Reevaluate marks every unachieved milestone whose threshold is covered by
// totalEarned, stamping it with now. The input is not mutated; the returned
// slice is a fresh copy. Re-running with the same totalEarned is a no-op
// once all applicable milestones are marked.
func Reevaluate(totalEarned int64, milestones []domain.Milestone, now time.Time) []domain.Milestone {
	out := make([]domain.Milestone, len(milestones))
	copy(out, milestones)
	for i := range out {
		if out[i].Achieved || totalEarned < out[i].Threshold {
			continue
		}
		ts := now
		out[i].Achieved = true
		out[i].AchievedAt = &ts
	}
	return out
}

// Next returns the lowest unachieved milestone whose threshold exceeds
// totalEarned, or false when none remains.
func Next(totalEarned int64, milestones []domain.Milestone) (domain.Milestone, bool) {
	var best domain.Milestone
	found := false
	for _, m := range milestones {
		if m.Achieved || m.Threshold <= totalEarned {
			continue
		}
		if !found || m.Threshold < best.Threshold {
			best = m
			found = true
		}
	}
	return best, found
}
