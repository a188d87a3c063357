package api

import (
	"log"
	"net/http"
	"strings"

	"fittrack/internal/insights"
	"fittrack/internal/store"
)

// insightsHistory bounds how many workouts and meals are sent with a question.
const insightsHistory = 20

type InsightsRequest struct {
	Question string `json:"question"`
}

type InsightsResponse struct {
	Answer string `json:"answer"`
}

// InsightsHandler asks the configured analyzer a question about recent records.
func (h *Handlers) InsightsHandler(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "insights_unavailable", "GEMINI_API_KEY is not configured")
		return
	}

	var req InsightsRequest
	if _, err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "question is required")
		return
	}

	ctx := r.Context()
	workouts, err := h.store.ListWorkouts(ctx)
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}
	diets, err := h.store.ListDiets(ctx)
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}
	wearables, err := h.store.ListWearables(ctx, store.WearableListLimit)
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}

	snap := insights.Snapshot{
		Workouts:  workouts[:min(len(workouts), insightsHistory)],
		Diets:     diets[:min(len(diets), insightsHistory)],
		Wearables: wearables,
	}
	answer, err := h.analyzer.Analyze(ctx, snap, question)
	if err != nil {
		log.Printf("insights: %v", err)
		writeError(w, http.StatusBadGateway, "upstream_error", "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, InsightsResponse{Answer: answer})
}
