package domain

import "time"

// Lesson is one unit of educational content.
type Lesson struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	XP        int64  `json:"xp"`
	Completed bool   `json:"completed"`
}

// Level groups lessons. Levels unlock sequentially: a level is unlocked
// only once the previous level's lessons are all completed, except level 1
// which starts unlocked.
type Level struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Lessons   []Lesson `json:"lessons"`
	Unlocked  bool     `json:"unlocked"`
	Completed bool     `json:"completed"`
	Progress  int      `json:"progress"` // percent of lessons completed
}

// DefaultCurriculum returns the fixed level/lesson tree with only level 1
// unlocked.
func DefaultCurriculum() []Level {
	return []Level{
		{
			ID: 1, Title: "Money Basics", Unlocked: true,
			Lessons: []Lesson{
				{ID: "what-is-money", Title: "What Is Money?", XP: 10},
				{ID: "needs-vs-wants", Title: "Needs vs. Wants", XP: 10},
				{ID: "why-save", Title: "Why Save?", XP: 10},
				{ID: "setting-goals", Title: "Setting a Goal", XP: 15},
				{ID: "piggy-banks", Title: "Where Savings Live", XP: 15},
				{ID: "track-your-money", Title: "Tracking Your Money", XP: 15},
			},
		},
		{
			ID: 2, Title: "Smart Spending",
			Lessons: []Lesson{
				{ID: "making-a-budget", Title: "Making a Budget", XP: 20},
				{ID: "impulse-buys", Title: "Impulse Buys", XP: 20},
				{ID: "comparing-prices", Title: "Comparing Prices", XP: 20},
				{ID: "spending-plan", Title: "Your Spending Plan", XP: 25},
			},
		},
		{
			ID: 3, Title: "Earning More",
			Lessons: []Lesson{
				{ID: "ways-to-earn", Title: "Ways to Earn", XP: 25},
				{ID: "value-of-work", Title: "The Value of Work", XP: 25},
				{ID: "side-hustles", Title: "Small Ventures", XP: 30},
				{ID: "negotiation", Title: "Asking for More", XP: 30},
			},
		},
		{
			ID: 4, Title: "Growing Savings",
			Lessons: []Lesson{
				{ID: "interest-basics", Title: "How Interest Works", XP: 30},
				{ID: "compound-growth", Title: "Compound Growth", XP: 35},
				{ID: "savings-accounts", Title: "Savings Accounts", XP: 35},
				{ID: "emergency-funds", Title: "Emergency Funds", XP: 35},
			},
		},
		{
			ID: 5, Title: "Money Mastery",
			Lessons: []Lesson{
				{ID: "giving-back", Title: "Giving Back", XP: 40},
				{ID: "long-term-goals", Title: "Long-Term Goals", XP: 40},
				{ID: "money-mistakes", Title: "Common Money Mistakes", XP: 45},
				{ID: "your-money-plan", Title: "Your Money Plan", XP: 50},
			},
		},
	}
}

// KnownLesson reports whether id exists anywhere in the curriculum.
func KnownLesson(id string) bool {
	for _, lvl := range DefaultCurriculum() {
		for _, l := range lvl.Lessons {
			if l.ID == id {
				return true
			}
		}
	}
	return false
}

// GamificationProgress is the aggregate lesson/XP/streak record.
type GamificationProgress struct {
	CurrentLevel       int        `json:"current_level"`
	TotalXP            int64      `json:"total_xp"`
	CurrentStreakDays  int        `json:"current_streak_days"`
	LongestStreakDays  int        `json:"longest_streak_days"`
	CompletedLessonIDs []string   `json:"completed_lesson_ids"`
	DailyGoalXP        int64      `json:"daily_goal_xp"`
	DailyProgressXP    int64      `json:"daily_progress_xp"`
	LastLessonDate     *time.Time `json:"last_lesson_date,omitempty"`
	CurrentLessonID    string     `json:"current_lesson_id,omitempty"`
}

// NewGamificationProgress returns the starting record: level 1, a default
// daily goal, nothing completed.
func NewGamificationProgress() GamificationProgress {
	return GamificationProgress{CurrentLevel: 1, DailyGoalXP: 30}
}
