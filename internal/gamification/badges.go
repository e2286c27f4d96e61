package gamification

import "github.com/coinquest/engine/internal/domain"

// badgeRule pairs a badge id with its pure unlock predicate over the
// current state. Rules are re-evaluated after every lesson completion; a
// badge that unlocks stays unlocked until a global reset.
type badgeRule struct {
	ID        string
	Satisfied func(s *State, goalSet func() bool) bool
}

var badgeRules = []badgeRule{
	{
		ID: domain.BadgeFirstLesson,
		Satisfied: func(s *State, _ func() bool) bool {
			return len(s.Progress.CompletedLessonIDs) >= 1
		},
	},
	{
		ID: domain.BadgeLevel2Complete,
		Satisfied: func(s *State, _ func() bool) bool {
			return levelCompleted(s.Levels, 2)
		},
	},
	{
		ID: domain.BadgeStreak7,
		Satisfied: func(s *State, _ func() bool) bool {
			return s.Progress.CurrentStreakDays >= 7
		},
	},
	{
		ID: domain.BadgeLevel4Complete,
		Satisfied: func(s *State, _ func() bool) bool {
			return levelCompleted(s.Levels, 4)
		},
	},
	{
		ID: domain.BadgeAllLevelsComplete,
		Satisfied: func(s *State, _ func() bool) bool {
			for _, lvl := range s.Levels {
				if !lvl.Completed {
					return false
				}
			}
			return len(s.Levels) > 0
		},
	},
	{
		// Unlocks only when the wired goal check reports an active savings
		// goal. With no check wired the badge stays locked.
		ID: domain.BadgeGoalSetter,
		Satisfied: func(_ *State, goalSet func() bool) bool {
			return goalSet != nil && goalSet()
		},
	},
}

func levelCompleted(levels []domain.Level, id int) bool {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl.Completed
		}
	}
	return false
}
