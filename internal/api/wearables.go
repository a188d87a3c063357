package api

import (
	"errors"
	"net/http"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/store"
)

// CreateWearableRequest is the payload for POST /wearables. Any recorded_at
// sent by the client is ignored; the server stamps the reading.
type CreateWearableRequest struct {
	HeartRate int `json:"heart_rate"`
	Steps     int `json:"steps"`
}

// ListWearablesHandler returns the most recent readings only.
func (h *Handlers) ListWearablesHandler(w http.ResponseWriter, r *http.Request) {
	wearables, err := h.store.ListWearables(r.Context(), store.WearableListLimit)
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wearables)
}

func (h *Handlers) CreateWearableHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateWearableRequest
	keys, err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := requireFields(keys, "heart_rate", "steps"); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	wearable := models.Wearable{
		HeartRate:  req.HeartRate,
		Steps:      req.Steps,
		RecordedAt: h.now().Format(models.RecordedAtLayout),
	}
	if _, err := h.store.CreateWearable(r.Context(), wearable); err != nil {
		h.apiServerError(w, r, err)
		return
	}
	observability.RecordMutation("wearable", "create")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Wearable data added"})
}

// wearableFromForm keeps recorded_at exactly as the browser sent it.
func wearableFromForm(r *http.Request) (models.Wearable, error) {
	f := newFormReader(r)
	wearable := models.Wearable{
		HeartRate:  f.int("heart_rate"),
		Steps:      f.int("steps"),
		RecordedAt: f.str("recorded_at"),
	}
	return wearable, f.err
}

func (h *Handlers) AddWearableFormHandler(w http.ResponseWriter, r *http.Request) {
	wearable, err := wearableFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.store.CreateWearable(r.Context(), wearable); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("wearable", "create")
	redirectToIndex(w, r)
}

type editWearablePage struct {
	ID       int64
	Wearable *models.Wearable
}

func (h *Handlers) EditWearableHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wearable, err := h.store.GetWearable(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "update_wearable.html", editWearablePage{ID: id, Wearable: wearable})
}

func (h *Handlers) UpdateWearableHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wearable, err := wearableFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wearable.ID = id
	if err := h.store.UpdateWearable(r.Context(), wearable); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("wearable", "update")
	redirectToIndex(w, r)
}

func (h *Handlers) DeleteWearableHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteWearable(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("wearable", "delete")
	redirectToIndex(w, r)
}
