package handler

import (
	"math"
	"net/http"

	"github.com/coinquest/engine/internal/domain"
	"github.com/coinquest/engine/internal/gamestore"
	"github.com/coinquest/engine/internal/reward"
	"github.com/go-chi/chi/v5"
)

// GameHandler exposes the game store operations.
type GameHandler struct {
	store *gamestore.Store
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(store *gamestore.Store) *GameHandler {
	return &GameHandler{store: store}
}

// GetState handles GET /game/state.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	next, ok := h.store.NextMilestone()
	resp := map[string]interface{}{
		"state": snap,
	}
	if ok {
		resp["next_milestone"] = next
	}
	RespondJSON(w, http.StatusOK, resp)
}

// Select handles POST /game/select. A null game_id clears the selection.
func (h *GameHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID *domain.GameID `json:"game_id"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.SelectGame(r.Context(), req.GameID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"selected": req.GameID})
}

// SetGoal handles PUT /game/goal.
func (h *GameHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64             `json:"amount"`
		Period domain.GoalPeriod `json:"period"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.SetSavingsGoal(r.Context(), req.Amount, req.Period); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"target_amount": req.Amount,
		"period":        req.Period,
	})
}

// RecordEarnings handles POST /game/earnings. The amount is validated as a
// decoded JSON number before narrowing, so fractional or out-of-band values
// are rejected rather than truncated.
func (h *GameHandler) RecordEarnings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := domain.ValidateRewardAmount(req.Amount); err != nil {
		RespondError(w, err)
		return
	}
	if req.Amount != math.Trunc(req.Amount) {
		RespondError(w, domain.ErrValidation("reward amount must be a whole number"))
		return
	}
	if err := h.store.RecordEarnings(r.Context(), int64(req.Amount)); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.store.Snapshot().Progress)
}

// RecordPlay handles POST /game/plays. The response includes a freshly
// drawn reward for the game so the client can credit it via /game/earnings.
func (h *GameHandler) RecordPlay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID domain.GameID `json:"game_id"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.RecordPlay(r.Context(), req.GameID); err != nil {
		RespondError(w, err)
		return
	}
	payout, err := reward.Compute(req.GameID)
	if err != nil {
		RespondError(w, err)
		return
	}
	status, err := h.store.GameStatus(req.GameID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id": req.GameID,
		"reward":  payout,
		"status":  status,
	})
}

// ReevaluateMilestones handles POST /game/milestones/reevaluate.
func (h *GameHandler) ReevaluateMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.store.ReevaluateMilestones(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"milestones": milestones})
}

// Status handles GET /game/games/{id}/status.
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := domain.GameID(chi.URLParam(r, "id"))
	status, err := h.store.GameStatus(id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, status)
}

// Plays handles GET /game/games/{id}/plays.
func (h *GameHandler) Plays(w http.ResponseWriter, r *http.Request) {
	id := domain.GameID(chi.URLParam(r, "id"))
	count, err := h.store.PlayCount(id)
	if err != nil {
		RespondError(w, err)
		return
	}
	remaining, err := h.store.PlaysRemaining(id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":         id,
		"play_count":      count,
		"plays_remaining": remaining,
	})
}

// Reset handles POST /game/reset.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetAll(r.Context()); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
