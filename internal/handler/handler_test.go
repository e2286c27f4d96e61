package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinquest/engine/internal/app"
	"github.com/coinquest/engine/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router, err := app.NewRouter(context.Background(), app.RouterDeps{
		Blobs:              storage.NewInMemoryStore(),
		Logger:             logger,
		CORSAllowedOrigins: "*",
	})
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}
	return resp, decoded
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestSetGoal(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid goal accepted", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/game/goal",
			`{"amount": 1500, "period": "month1"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1500), body["target_amount"])
	})

	t.Run("out-of-band goal rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/game/goal",
			`{"amount": 2001, "period": "month1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Contains(t, body["message"], "out of range")
	})

	t.Run("unknown period rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/game/goal",
			`{"amount": 1000, "period": "fortnight"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})
}

func TestRecordPlayAndStatus(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/game/plays", `{"game_id": "rollDice"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reward := body["reward"].(float64)
	assert.GreaterOrEqual(t, reward, float64(5))
	assert.LessOrEqual(t, reward, float64(25))

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/game/games/rollDice/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["unlocked"])
	assert.NotEmpty(t, body["cooldown_expiry"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/game/games/rollDice/plays", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["play_count"])
	assert.Equal(t, float64(4), body["plays_remaining"])

	t.Run("unknown game rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/game/plays", `{"game_id": "pachinko"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("educational game has no cooldown", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/game/plays", `{"game_id": "quizWhiz"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/game/games/quizWhiz/status", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Nil(t, body["cooldown_expiry"])
	})
}

func TestEarningsAndMilestones(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/game/earnings", `{"amount": 150}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/game/milestones/reevaluate", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	milestones := body["milestones"].([]interface{})
	first := milestones[0].(map[string]interface{})
	assert.Equal(t, "first-hundred", first["id"])
	assert.Equal(t, true, first["achieved"])

	t.Run("fractional amount rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/game/earnings", `{"amount": 10.5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/game/earnings", `{"amount": -5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLessonFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/what-is-money/start", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/what-is-money/complete", `{"xp": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	progress := body["progress"].(map[string]interface{})
	assert.Equal(t, float64(10), progress["total_xp"])
	assert.Equal(t, float64(1), progress["current_streak_days"])

	t.Run("repeat completion conflicts", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/what-is-money/complete", `{"xp": 10}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", body["code"])
	})

	t.Run("unknown lesson rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/day-trading/complete", `{"xp": 10}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/learn/reset", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/learn/state", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		progress := body["progress"].(map[string]interface{})
		assert.Equal(t, float64(0), progress["total_xp"])
		assert.Equal(t, float64(1), progress["current_level"])
	})
}

func TestGoalSetterBadgeWiring(t *testing.T) {
	srv := newTestServer(t)

	// completing a lesson before any goal leaves the badge locked
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/what-is-money/complete", `{"xp": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, badgeUnlocked(t, body["badges"], "goal-setter"))

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/game/goal", `{"amount": 1500, "period": "month1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/learn/lessons/needs-vs-wants/complete", `{"xp": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, badgeUnlocked(t, body["badges"], "goal-setter"))
}

func badgeUnlocked(t *testing.T, badges interface{}, id string) bool {
	t.Helper()
	list, ok := badges.([]interface{})
	require.True(t, ok)
	for _, raw := range list {
		b := raw.(map[string]interface{})
		if b["id"] == id {
			unlocked, _ := b["unlocked"].(bool)
			return unlocked
		}
	}
	t.Fatalf("badge %s not in response", id)
	return false
}
