package domain

import "time"

// Badge ids.
const (
	BadgeFirstLesson       = "first-lesson"
	BadgeLevel2Complete    = "level-2-complete"
	BadgeStreak7           = "streak-7"
	BadgeLevel4Complete    = "level-4-complete"
	BadgeAllLevelsComplete = "all-levels-complete"
	BadgeGoalSetter        = "goal-setter"
)

// Badge is an unlockable award. Unlocked is monotonic until a global reset.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// DefaultBadges returns the fixed badge set, all locked.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: BadgeFirstLesson, Name: "First Steps", Description: "Complete your first lesson"},
		{ID: BadgeLevel2Complete, Name: "Smart Spender", Description: "Finish every lesson in level 2"},
		{ID: BadgeStreak7, Name: "Week Streak", Description: "Keep a 7-day learning streak"},
		{ID: BadgeLevel4Complete, Name: "Growth Guru", Description: "Finish every lesson in level 4"},
		{ID: BadgeAllLevelsComplete, Name: "Money Master", Description: "Complete the whole curriculum"},
		{ID: BadgeGoalSetter, Name: "Goal Setter", Description: "Set a savings goal"},
	}
}
