package api

import (
	"errors"
	"net/http"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/store"
)

// CreateWorkoutRequest is the payload for POST /workouts. Every key is
// required and must not be null.
type CreateWorkoutRequest struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
	Calories int    `json:"calories"`
}

func (h *Handlers) ListWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.store.ListWorkouts(r.Context())
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (h *Handlers) CreateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkoutRequest
	keys, err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := requireFields(keys, "type", "duration", "calories"); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	workout := models.Workout{Type: req.Type, Duration: req.Duration, Calories: req.Calories}
	if _, err := h.store.CreateWorkout(r.Context(), workout); err != nil {
		h.apiServerError(w, r, err)
		return
	}
	observability.RecordMutation("workout", "create")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Workout added"})
}

func workoutFromForm(r *http.Request) (models.Workout, error) {
	f := newFormReader(r)
	workout := models.Workout{
		Type:     f.str("type"),
		Duration: f.int("duration"),
		Calories: f.int("calories"),
	}
	return workout, f.err
}

func (h *Handlers) AddWorkoutFormHandler(w http.ResponseWriter, r *http.Request) {
	workout, err := workoutFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.store.CreateWorkout(r.Context(), workout); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("workout", "create")
	redirectToIndex(w, r)
}

type editWorkoutPage struct {
	ID      int64
	Workout *models.Workout
}

// EditWorkoutHandler shows the edit form. An unknown id renders an empty form.
func (h *Handlers) EditWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	workout, err := h.store.GetWorkout(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "update_workout.html", editWorkoutPage{ID: id, Workout: workout})
}

func (h *Handlers) UpdateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	workout, err := workoutFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	workout.ID = id
	if err := h.store.UpdateWorkout(r.Context(), workout); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("workout", "update")
	redirectToIndex(w, r)
}

func (h *Handlers) DeleteWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteWorkout(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("workout", "delete")
	redirectToIndex(w, r)
}
