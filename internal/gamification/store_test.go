package gamification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/coinquest/engine/internal/domain"
	"github.com/coinquest/engine/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, opts ...Option) (*Store, *fakeClock, storage.Store) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)}
	blobs := storage.NewInMemoryStore()
	opts = append([]Option{WithClock(clock.now)}, opts...)
	s, err := New(context.Background(), blobs, testLogger(), opts...)
	require.NoError(t, err)
	return s, clock, blobs
}

func level(t *testing.T, s *Store, id int) domain.Level {
	t.Helper()
	for _, lvl := range s.Snapshot().Levels {
		if lvl.ID == id {
			return lvl
		}
	}
	t.Fatalf("level %d not found", id)
	return domain.Level{}
}

func badge(t *testing.T, s *Store, id string) domain.Badge {
	t.Helper()
	for _, b := range s.Badges() {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("badge %s not found", id)
	return domain.Badge{}
}

func TestCompleteLesson(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))

	p := s.Progress()
	assert.Equal(t, int64(10), p.TotalXP)
	assert.Equal(t, 1, p.CurrentStreakDays)
	assert.Equal(t, 1, p.LongestStreakDays)
	assert.Equal(t, []string{"what-is-money"}, p.CompletedLessonIDs)
	require.NotNil(t, p.LastLessonDate)
	assert.Equal(t, clock.now(), *p.LastLessonDate)

	lvl1 := level(t, s, 1)
	assert.Equal(t, 16, lvl1.Progress) // 1 of 6
	assert.False(t, lvl1.Completed)

	t.Run("first lesson badge unlocks", func(t *testing.T) {
		b := badge(t, s, domain.BadgeFirstLesson)
		assert.True(t, b.Unlocked)
		require.NotNil(t, b.UnlockedAt)
	})

	t.Run("repeat completion conflicts and mutates nothing", func(t *testing.T) {
		err := s.CompleteLesson(ctx, "what-is-money", 10)
		require.Error(t, err)
		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.Equal(t, int64(10), s.Progress().TotalXP)
		assert.Len(t, s.Progress().CompletedLessonIDs, 1)
	})

	t.Run("unknown lesson rejected", func(t *testing.T) {
		require.Error(t, s.CompleteLesson(ctx, "day-trading", 10))
	})
}

func TestCompleteLesson_LevelCompletionUnlocksNext(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	lessons := level(t, s, 1).Lessons
	require.Len(t, lessons, 6)

	// complete the first five
	for _, l := range lessons[:5] {
		require.NoError(t, s.CompleteLesson(ctx, l.ID, l.XP))
	}
	assert.False(t, level(t, s, 1).Completed)
	assert.False(t, level(t, s, 2).Unlocked)

	// the sixth flips level 1 completed and level 2 unlocked in one mutation
	require.NoError(t, s.CompleteLesson(ctx, lessons[5].ID, lessons[5].XP))
	lvl1 := level(t, s, 1)
	assert.True(t, lvl1.Completed)
	assert.Equal(t, 100, lvl1.Progress)
	assert.True(t, level(t, s, 2).Unlocked)
	assert.Equal(t, 2, s.Progress().CurrentLevel)
}

func TestCompleteLesson_StreakCountsEveryCall(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	// Three completions on the same day still bump the streak three times.
	for i, id := range []string{"what-is-money", "needs-vs-wants", "why-save"} {
		require.NoError(t, s.CompleteLesson(ctx, id, 10))
		assert.Equal(t, i+1, s.Progress().CurrentStreakDays)
	}
}

func TestLongestStreakMonotonic(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
	require.NoError(t, s.CompleteLesson(ctx, "needs-vs-wants", 10))
	assert.Equal(t, 2, s.Progress().LongestStreakDays)

	// a streak reset never lowers the longest counter
	clock.advance(72 * time.Hour)
	require.NoError(t, s.UpdateStreak(ctx))
	p := s.Progress()
	assert.Zero(t, p.CurrentStreakDays)
	assert.Equal(t, 2, p.LongestStreakDays)

	require.NoError(t, s.CompleteLesson(ctx, "why-save", 10))
	p = s.Progress()
	assert.Equal(t, 1, p.CurrentStreakDays)
	assert.Equal(t, 2, p.LongestStreakDays)
	assert.GreaterOrEqual(t, p.LongestStreakDays, p.CurrentStreakDays)
}

func TestUpdateStreak(t *testing.T) {
	t.Run("no lessons yet is a no-op", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		require.NoError(t, s.UpdateStreak(context.Background()))
		assert.Zero(t, s.Progress().CurrentStreakDays)
	})

	t.Run("same day keeps the streak", func(t *testing.T) {
		s, clock, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
		clock.advance(6 * time.Hour)
		require.NoError(t, s.UpdateStreak(ctx))
		assert.Equal(t, 1, s.Progress().CurrentStreakDays)
	})

	t.Run("next day keeps the streak", func(t *testing.T) {
		s, clock, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
		clock.advance(24 * time.Hour)
		require.NoError(t, s.UpdateStreak(ctx))
		assert.Equal(t, 1, s.Progress().CurrentStreakDays)
	})

	t.Run("two calendar days gone resets", func(t *testing.T) {
		s, clock, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
		clock.advance(48 * time.Hour)
		require.NoError(t, s.UpdateStreak(ctx))
		assert.Zero(t, s.Progress().CurrentStreakDays)
	})
}

func TestBadges(t *testing.T) {
	t.Run("streak badge at seven days", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		ctx := context.Background()
		lessons := []string{
			"what-is-money", "needs-vs-wants", "why-save", "setting-goals",
			"piggy-banks", "track-your-money", "making-a-budget",
		}
		for _, id := range lessons {
			require.NoError(t, s.CompleteLesson(ctx, id, 10))
		}
		assert.True(t, badge(t, s, domain.BadgeStreak7).Unlocked)
	})

	t.Run("goal setter follows the wired check", func(t *testing.T) {
		goalSet := false
		s, _, _ := newTestStore(t, WithGoalCheck(func() bool { return goalSet }))
		ctx := context.Background()

		require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
		assert.False(t, badge(t, s, domain.BadgeGoalSetter).Unlocked)

		goalSet = true
		require.NoError(t, s.CompleteLesson(ctx, "needs-vs-wants", 10))
		assert.True(t, badge(t, s, domain.BadgeGoalSetter).Unlocked)
	})

	t.Run("goal setter stays locked without a check", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		require.NoError(t, s.CompleteLesson(context.Background(), "what-is-money", 10))
		assert.False(t, badge(t, s, domain.BadgeGoalSetter).Unlocked)
	})

	t.Run("unlock timestamp set once", func(t *testing.T) {
		s, clock, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
		first := badge(t, s, domain.BadgeFirstLesson)
		require.NotNil(t, first.UnlockedAt)
		want := *first.UnlockedAt

		clock.advance(time.Hour)
		require.NoError(t, s.CompleteLesson(ctx, "needs-vs-wants", 10))
		assert.Equal(t, want, *badge(t, s, domain.BadgeFirstLesson).UnlockedAt)
	})

	t.Run("earn badge directly", func(t *testing.T) {
		s, _, _ := newTestStore(t)
		ctx := context.Background()
		require.NoError(t, s.EarnBadge(ctx, domain.BadgeGoalSetter))
		assert.True(t, badge(t, s, domain.BadgeGoalSetter).Unlocked)
		require.Error(t, s.EarnBadge(ctx, "no-such-badge"))
	})
}

func TestUnlockLevel(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UnlockLevel(ctx, 4))
	assert.True(t, level(t, s, 4).Unlocked)
	assert.Equal(t, 4, s.Progress().CurrentLevel)

	require.Error(t, s.UnlockLevel(ctx, 99))
}

func TestSetters(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddXP(ctx, 55))
	assert.Equal(t, int64(55), s.Progress().TotalXP)

	require.NoError(t, s.SetDailyGoal(ctx, 120))
	assert.Equal(t, int64(120), s.Progress().DailyGoalXP)

	require.NoError(t, s.UpdateDailyProgress(ctx, 45))
	assert.Equal(t, int64(45), s.Progress().DailyProgressXP)

	require.NoError(t, s.StartLesson(ctx, "why-save"))
	assert.Equal(t, "why-save", s.Progress().CurrentLessonID)
	require.Error(t, s.StartLesson(ctx, "day-trading"))
}

func TestResetProgress(t *testing.T) {
	s, _, blobs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
	require.NoError(t, s.UnlockLevel(ctx, 3))
	require.NoError(t, s.SetDailyGoal(ctx, 200))

	require.NoError(t, s.ResetProgress(ctx))

	fresh, err := New(ctx, storage.NewInMemoryStore(), testLogger())
	require.NoError(t, err)
	assert.Equal(t, fresh.Snapshot(), s.Snapshot())

	reloaded, err := New(ctx, blobs, testLogger())
	require.NoError(t, err)
	assert.Equal(t, fresh.Snapshot(), reloaded.Snapshot())
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, clock, blobs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CompleteLesson(ctx, "what-is-money", 10))
	require.NoError(t, s.CompleteLesson(ctx, "needs-vs-wants", 10))
	require.NoError(t, s.SetDailyGoal(ctx, 60))
	require.NoError(t, s.StartLesson(ctx, "why-save"))

	reloaded, err := New(ctx, blobs, testLogger(), WithClock(clock.now))
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}
