package domain

import "time"

// Milestone is a cumulative-earnings threshold. Achieved is monotonic:
// once true it only reverts through a global reset, and AchievedAt is set
// exactly once, at the first evaluation that crosses the threshold.
type Milestone struct {
	ID         string     `json:"id"`
	Threshold  int64      `json:"threshold"`
	Achieved   bool       `json:"achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty"`
}

// DefaultMilestones returns the fixed milestone ladder, lowest first.
func DefaultMilestones() []Milestone {
	return []Milestone{
		{ID: "first-hundred", Threshold: 100},
		{ID: "quarter-stack", Threshold: 250},
		{ID: "half-grand", Threshold: 500},
		{ID: "four-figures", Threshold: 1_000},
		{ID: "serious-saver", Threshold: 2_500},
		{ID: "five-grand", Threshold: 5_000},
	}
}

// UserProgress is the aggregate play/earnings record.
// Invariant: LongestStreakDays >= CurrentStreakDays after recomputation.
type UserProgress struct {
	TotalEarned       int64       `json:"total_earned"`
	TotalPlays        int         `json:"total_plays"`
	CurrentStreakDays int         `json:"current_streak_days"`
	LongestStreakDays int         `json:"longest_streak_days"`
	Milestones        []Milestone `json:"milestones"`
}

// NewUserProgress returns a zeroed progress record with the default
// milestone ladder.
func NewUserProgress() UserProgress {
	return UserProgress{Milestones: DefaultMilestones()}
}
