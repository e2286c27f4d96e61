// Package gamification holds the persisted lesson/XP/streak/badge state
// container.
//
// Known quirk, kept intentionally: CompleteLesson bumps the streak counter
// on every call, so several lessons finished on the same calendar day each
// count a day. The day-boundary reset lives only in UpdateStreak, which the
// caller must invoke itself (nothing here schedules it).
package gamification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/coinquest/engine/internal/domain"
	"github.com/coinquest/engine/internal/storage"
)

// State is the persisted snapshot of the gamification store.
type State struct {
	Levels   []domain.Level              `json:"levels"`
	Badges   []domain.Badge              `json:"badges"`
	Progress domain.GamificationProgress `json:"progress"`
}

func initialState() State {
	return State{
		Levels:   domain.DefaultCurriculum(),
		Badges:   domain.DefaultBadges(),
		Progress: domain.NewGamificationProgress(),
	}
}

// Store is the lesson/XP/streak/badge state container.
type Store struct {
	mu      sync.Mutex
	blobs   storage.Store
	logger  *slog.Logger
	now     func() time.Time
	goalSet func() bool
	state   State
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithGoalCheck wires the goal-setter badge to a live "user has a savings
// goal" probe.
func WithGoalCheck(goalSet func() bool) Option {
	return func(s *Store) { s.goalSet = goalSet }
}

// New rehydrates the store from storage.KeyGamificationState, or starts
// from the default curriculum when nothing has been persisted yet.
func New(ctx context.Context, blobs storage.Store, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{blobs: blobs, logger: logger, now: time.Now, state: initialState()}
	for _, opt := range opts {
		opt(s)
	}
	var persisted State
	err := storage.LoadJSON(ctx, blobs, storage.KeyGamificationState, &persisted)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// first run
	case err != nil:
		return nil, fmt.Errorf("rehydrate gamification state: %w", err)
	default:
		s.state = persisted
	}
	return s, nil
}

func (s *Store) persist(ctx context.Context) error {
	if err := storage.SaveJSON(ctx, s.blobs, storage.KeyGamificationState, s.state, s.now()); err != nil {
		return domain.ErrInternal("persist gamification state", err)
	}
	return nil
}

// CompleteLesson marks lessonID done, recomputes level progress, unlocks
// the next level when the containing level just finished, credits xpEarned,
// bumps the streak and re-evaluates badge rules. Completing the same lesson
// twice is a conflict and mutates nothing.
func (s *Store) CompleteLesson(ctx context.Context, lessonID string, xpEarned int64) error {
	if err := domain.ValidateLessonID(lessonID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.state.Progress.CompletedLessonIDs, lessonID) {
		return domain.ErrConflict(fmt.Sprintf("lesson %s already completed", lessonID))
	}

	containing := -1
	for i := range s.state.Levels {
		lvl := &s.state.Levels[i]
		wasCompleted := lvl.Completed
		for j := range lvl.Lessons {
			if lvl.Lessons[j].ID == lessonID {
				lvl.Lessons[j].Completed = true
				containing = i
			}
		}
		recomputeLevel(lvl)
		if containing == i && lvl.Completed && !wasCompleted {
			if i+1 < len(s.state.Levels) {
				next := &s.state.Levels[i+1]
				next.Unlocked = true
				s.state.Progress.CurrentLevel = next.ID
				s.logger.Info("level unlocked", "level", next.ID)
			}
		}
	}

	p := &s.state.Progress
	p.TotalXP += xpEarned
	p.CurrentStreakDays++
	p.LongestStreakDays = max(p.LongestStreakDays, p.CurrentStreakDays)
	p.CompletedLessonIDs = append(p.CompletedLessonIDs, lessonID)
	now := s.now()
	p.LastLessonDate = &now

	for _, id := range s.evaluateBadges() {
		s.logger.Info("badge unlocked", "badge", id)
	}
	s.logger.Info("lesson completed", "lesson", lessonID, "xp", xpEarned, "total_xp", p.TotalXP)
	return s.persist(ctx)
}

// StartLesson records lessonID as the lesson in progress.
func (s *Store) StartLesson(ctx context.Context, lessonID string) error {
	if err := domain.ValidateLessonID(lessonID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress.CurrentLessonID = lessonID
	return s.persist(ctx)
}

// UnlockLevel forcibly unlocks levelID and makes it current. An escape
// hatch outside the normal completion flow.
func (s *Store) UnlockLevel(ctx context.Context, levelID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Levels {
		if s.state.Levels[i].ID == levelID {
			s.state.Levels[i].Unlocked = true
			s.state.Progress.CurrentLevel = levelID
			s.logger.Info("level force-unlocked", "level", levelID)
			return s.persist(ctx)
		}
	}
	return domain.ErrNotFound("level", fmt.Sprint(levelID))
}

// EarnBadge forcibly unlocks badgeID. Already-unlocked badges are left
// untouched.
func (s *Store) EarnBadge(ctx context.Context, badgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Badges {
		if s.state.Badges[i].ID != badgeID {
			continue
		}
		if !s.state.Badges[i].Unlocked {
			now := s.now()
			s.state.Badges[i].Unlocked = true
			s.state.Badges[i].UnlockedAt = &now
			s.logger.Info("badge unlocked", "badge", badgeID)
		}
		return s.persist(ctx)
	}
	return domain.ErrNotFound("badge", badgeID)
}

// UpdateStreak zeroes the current streak when more than one calendar day
// has passed since the last completed lesson. This is the only place
// day-boundary logic runs.
func (s *Store) UpdateStreak(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := s.state.Progress.LastLessonDate
	if last == nil {
		return nil
	}
	if calendarDaysBetween(*last, s.now()) > 1 {
		s.state.Progress.CurrentStreakDays = 0
		s.logger.Info("streak reset", "last_lesson", last.Format(time.DateOnly))
		return s.persist(ctx)
	}
	return nil
}

// AddXP credits amount to the XP total.
func (s *Store) AddXP(ctx context.Context, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress.TotalXP += amount
	return s.persist(ctx)
}

// SetDailyGoal replaces the daily XP goal.
func (s *Store) SetDailyGoal(ctx context.Context, goal int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress.DailyGoalXP = goal
	return s.persist(ctx)
}

// UpdateDailyProgress replaces today's XP progress.
func (s *Store) UpdateDailyProgress(ctx context.Context, progress int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress.DailyProgressXP = progress
	return s.persist(ctx)
}

// ResetProgress restores the initial configuration: level 1 unlocked only,
// zero XP and streak, no completed lessons, no badges.
func (s *Store) ResetProgress(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialState()
	s.logger.Info("gamification state reset")
	return s.persist(ctx)
}

// Progress returns a copy of the aggregate progress record.
func (s *Store) Progress() domain.GamificationProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.state.Progress
	p.CompletedLessonIDs = slices.Clone(p.CompletedLessonIDs)
	if p.LastLessonDate != nil {
		d := *p.LastLessonDate
		p.LastLessonDate = &d
	}
	return p
}

// Badges returns a copy of the badge list.
func (s *Store) Badges() []domain.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Badges)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := State{
		Badges:   slices.Clone(s.state.Badges),
		Progress: s.state.Progress,
	}
	out.Progress.CompletedLessonIDs = slices.Clone(s.state.Progress.CompletedLessonIDs)
	if d := s.state.Progress.LastLessonDate; d != nil {
		dd := *d
		out.Progress.LastLessonDate = &dd
	}
	out.Levels = make([]domain.Level, len(s.state.Levels))
	for i, lvl := range s.state.Levels {
		lvl.Lessons = slices.Clone(lvl.Lessons)
		out.Levels[i] = lvl
	}
	return out
}

// evaluateBadges flips every rule that is newly satisfied and returns the
// unlocked ids. Caller holds the lock.
func (s *Store) evaluateBadges() []string {
	var newly []string
	for _, rule := range badgeRules {
		for i := range s.state.Badges {
			b := &s.state.Badges[i]
			if b.ID != rule.ID || b.Unlocked {
				continue
			}
			if rule.Satisfied(&s.state, s.goalSet) {
				now := s.now()
				b.Unlocked = true
				b.UnlockedAt = &now
				newly = append(newly, b.ID)
			}
		}
	}
	return newly
}

func recomputeLevel(lvl *domain.Level) {
	if len(lvl.Lessons) == 0 {
		lvl.Progress = 0
		lvl.Completed = false
		return
	}
	done := 0
	for _, l := range lvl.Lessons {
		if l.Completed {
			done++
		}
	}
	lvl.Progress = done * 100 / len(lvl.Lessons)
	lvl.Completed = done == len(lvl.Lessons)
}

// calendarDaysBetween counts midnight boundaries between a and b in UTC.
func calendarDaysBetween(a, b time.Time) int {
	au := a.UTC()
	bu := b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}
