package handler

import (
	"net/http"
	"strconv"

	"github.com/coinquest/engine/internal/domain"
	"github.com/coinquest/engine/internal/gamification"
	"github.com/go-chi/chi/v5"
)

// LearnHandler exposes the gamification store operations.
type LearnHandler struct {
	store *gamification.Store
}

// NewLearnHandler creates a new LearnHandler.
func NewLearnHandler(store *gamification.Store) *LearnHandler {
	return &LearnHandler{store: store}
}

// GetState handles GET /learn/state.
func (h *LearnHandler) GetState(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.store.Snapshot())
}

// StartLesson handles POST /learn/lessons/{id}/start.
func (h *LearnHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.StartLesson(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"lesson_id": id, "status": "started"})
}

// CompleteLesson handles POST /learn/lessons/{id}/complete.
func (h *LearnHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		XP int64 `json:"xp"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.CompleteLesson(r.Context(), id, req.XP); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"lesson_id": id,
		"progress":  h.store.Progress(),
		"badges":    h.store.Badges(),
	})
}

// UnlockLevel handles POST /learn/levels/{id}/unlock.
func (h *LearnHandler) UnlockLevel(w http.ResponseWriter, r *http.Request) {
	levelID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("level id must be an integer"))
		return
	}
	if err := h.store.UnlockLevel(r.Context(), levelID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"level": levelID, "unlocked": true})
}

// EarnBadge handles POST /learn/badges/{id}/earn.
func (h *LearnHandler) EarnBadge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.EarnBadge(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{"badge": id, "unlocked": true})
}

// RefreshStreak handles POST /learn/streak/refresh.
func (h *LearnHandler) RefreshStreak(w http.ResponseWriter, r *http.Request) {
	if err := h.store.UpdateStreak(r.Context()); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.store.Progress())
}

// AddXP handles POST /learn/xp.
func (h *LearnHandler) AddXP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.AddXP(r.Context(), req.Amount); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.store.Progress())
}

// SetDailyGoal handles PUT /learn/daily-goal.
func (h *LearnHandler) SetDailyGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal int64 `json:"goal"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.SetDailyGoal(r.Context(), req.Goal); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.store.Progress())
}

// UpdateDailyProgress handles PUT /learn/daily-progress.
func (h *LearnHandler) UpdateDailyProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Progress int64 `json:"progress"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}
	if err := h.store.UpdateDailyProgress(r.Context(), req.Progress); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.store.Progress())
}

// Reset handles POST /learn/reset.
func (h *LearnHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetProgress(r.Context()); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
