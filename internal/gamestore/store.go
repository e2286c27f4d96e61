// Package gamestore holds the persisted play/earnings state container.
//
// Every mutation validates, updates in-memory state and writes the whole
// snapshot back through the blob store before returning. Cooldown liveness
// is computed lazily at query time against the injected clock; no timers
// are scheduled.
package gamestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coinquest/engine/internal/domain"
	"github.com/coinquest/engine/internal/milestone"
	"github.com/coinquest/engine/internal/reward"
	"github.com/coinquest/engine/internal/storage"
)

// State is the persisted snapshot of the game store.
type State struct {
	SelectedGame *domain.GameID                          `json:"selected_game,omitempty"`
	Goal         *domain.SavingsGoal                     `json:"goal,omitempty"`
	Progress     domain.UserProgress                     `json:"progress"`
	Plays        map[domain.GameID]domain.GamePlayRecord `json:"plays"`
	Unlocked     map[domain.GameID]bool                  `json:"unlocked"`
}

func initialState() State {
	unlocked := make(map[domain.GameID]bool, len(domain.Games))
	for id := range domain.Games {
		unlocked[id] = true
	}
	return State{
		Progress: domain.NewUserProgress(),
		Plays:    make(map[domain.GameID]domain.GamePlayRecord),
		Unlocked: unlocked,
	}
}

// Store is the game-side state container.
type Store struct {
	mu     sync.Mutex
	blobs  storage.Store
	logger *slog.Logger
	now    func() time.Time
	state  State
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for tests that simulate cooldowns
// and streaks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New rehydrates the store from the blob at storage.KeyGameState, or starts
// from the initial configuration when nothing has been persisted yet.
func New(ctx context.Context, blobs storage.Store, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{blobs: blobs, logger: logger, now: time.Now, state: initialState()}
	for _, opt := range opts {
		opt(s)
	}
	var persisted State
	err := storage.LoadJSON(ctx, blobs, storage.KeyGameState, &persisted)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// first run
	case err != nil:
		return nil, fmt.Errorf("rehydrate game state: %w", err)
	default:
		if persisted.Plays == nil {
			persisted.Plays = make(map[domain.GameID]domain.GamePlayRecord)
		}
		if persisted.Unlocked == nil {
			persisted.Unlocked = initialState().Unlocked
		}
		s.state = persisted
	}
	return s, nil
}

func (s *Store) persist(ctx context.Context) error {
	if err := storage.SaveJSON(ctx, s.blobs, storage.KeyGameState, s.state, s.now()); err != nil {
		return domain.ErrInternal("persist game state", err)
	}
	return nil
}

// SelectGame sets the current selection; nil clears it.
func (s *Store) SelectGame(ctx context.Context, id *domain.GameID) error {
	if id != nil {
		if err := domain.ValidateGameID(*id); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state.SelectedGame
	s.state.SelectedGame = id
	s.logger.Info("game selection changed", "from", gameIDString(prev), "to", gameIDString(id))
	return s.persist(ctx)
}

// SetSavingsGoal replaces the active goal wholesale after band validation.
func (s *Store) SetSavingsGoal(ctx context.Context, amount int64, period domain.GoalPeriod) error {
	if err := domain.ValidateSavingsGoal(amount, period); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Goal = &domain.SavingsGoal{TargetAmount: amount, Period: period, SetAt: s.now()}
	s.logger.Info("savings goal set", "amount", amount, "period", period)
	return s.persist(ctx)
}

// RecordEarnings credits amount to the running total and counts a play.
func (s *Store) RecordEarnings(ctx context.Context, amount int64) error {
	if err := domain.ValidateRewardAmount(float64(amount)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Progress.TotalEarned += amount
	s.state.Progress.TotalPlays++
	return s.persist(ctx)
}

// RecordPlay increments the game's play count and, for non-educational
// games, starts a fresh cooldown from the current clock.
func (s *Store) RecordPlay(ctx context.Context, id domain.GameID) error {
	if err := domain.ValidateGameID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.state.Plays[id]
	rec.PlayCount++
	if !domain.EducationalGame(id) {
		expiry := reward.CooldownExpiry(s.now(), domain.CooldownDuration)
		rec.CooldownExpiresAt = &expiry
	}
	s.state.Plays[id] = rec
	s.state.Progress.TotalPlays++
	return s.persist(ctx)
}

// ReevaluateMilestones marks every milestone covered by the current total
// and returns the updated list.
func (s *Store) ReevaluateMilestones(ctx context.Context) ([]domain.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := achievedCount(s.state.Progress.Milestones)
	s.state.Progress.Milestones = milestone.Reevaluate(
		s.state.Progress.TotalEarned, s.state.Progress.Milestones, s.now())
	if newly := achievedCount(s.state.Progress.Milestones) - before; newly > 0 {
		s.logger.Info("milestones achieved", "count", newly, "total_earned", s.state.Progress.TotalEarned)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return copyMilestones(s.state.Progress.Milestones), nil
}

// NextMilestone returns the closest unachieved milestone above the current
// total, or false when the ladder is exhausted.
func (s *Store) NextMilestone() (domain.Milestone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return milestone.Next(s.state.Progress.TotalEarned, s.state.Progress.Milestones)
}

// ResetAll restores the initial configuration and persists it.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialState()
	s.logger.Info("game state reset")
	return s.persist(ctx)
}

// GameStatus reports whether id is unlocked and, if a cooldown is live at
// the current clock, when it expires.
func (s *Store) GameStatus(id domain.GameID) (domain.GameStatus, error) {
	if err := domain.ValidateGameID(id); err != nil {
		return domain.GameStatus{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	status := domain.GameStatus{Unlocked: s.state.Unlocked[id]}
	if rec, ok := s.state.Plays[id]; ok && reward.IsOnCooldown(rec.CooldownExpiresAt, s.now()) {
		expiry := *rec.CooldownExpiresAt
		status.CooldownExpiry = &expiry
	}
	return status, nil
}

// PlayCount returns the recorded plays for id, 0 when it was never played.
func (s *Store) PlayCount(id domain.GameID) (int, error) {
	if err := domain.ValidateGameID(id); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Plays[id].PlayCount, nil
}

// PlaysRemaining returns how many plays are left under the per-game cap.
func (s *Store) PlaysRemaining(id domain.GameID) (int, error) {
	count, err := s.PlayCount(id)
	if err != nil {
		return 0, err
	}
	if count >= domain.MaxPlaysPerGame {
		return 0, nil
	}
	return domain.MaxPlaysPerGame - count, nil
}

// HasSavingsGoal reports whether a goal is currently set.
func (s *Store) HasSavingsGoal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Goal != nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := State{Progress: s.state.Progress}
	out.Progress.Milestones = copyMilestones(s.state.Progress.Milestones)
	if s.state.SelectedGame != nil {
		id := *s.state.SelectedGame
		out.SelectedGame = &id
	}
	if s.state.Goal != nil {
		goal := *s.state.Goal
		out.Goal = &goal
	}
	out.Plays = make(map[domain.GameID]domain.GamePlayRecord, len(s.state.Plays))
	for id, rec := range s.state.Plays {
		if rec.CooldownExpiresAt != nil {
			expiry := *rec.CooldownExpiresAt
			rec.CooldownExpiresAt = &expiry
		}
		out.Plays[id] = rec
	}
	out.Unlocked = make(map[domain.GameID]bool, len(s.state.Unlocked))
	for id, v := range s.state.Unlocked {
		out.Unlocked[id] = v
	}
	return out
}

func achievedCount(ms []domain.Milestone) int {
	n := 0
	for _, m := range ms {
		if m.Achieved {
			n++
		}
	}
	return n
}

func copyMilestones(ms []domain.Milestone) []domain.Milestone {
	out := make([]domain.Milestone, len(ms))
	copy(out, ms)
	return out
}

func gameIDString(id *domain.GameID) string {
	if id == nil {
		return "none"
	}
	return string(*id)
}
