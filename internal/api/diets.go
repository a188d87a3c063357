package api

import (
	"errors"
	"net/http"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/store"
)

// CreateDietRequest is the payload for POST /diets.
type CreateDietRequest struct {
	Meal     string `json:"meal"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}

func (h *Handlers) ListDietsHandler(w http.ResponseWriter, r *http.Request) {
	diets, err := h.store.ListDiets(r.Context())
	if err != nil {
		h.apiServerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, diets)
}

func (h *Handlers) CreateDietHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateDietRequest
	keys, err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := requireFields(keys, "meal", "calories", "protein"); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	diet := models.Diet{Meal: req.Meal, Calories: req.Calories, Protein: req.Protein}
	if _, err := h.store.CreateDiet(r.Context(), diet); err != nil {
		h.apiServerError(w, r, err)
		return
	}
	observability.RecordMutation("diet", "create")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Diet added"})
}

func dietFromForm(r *http.Request) (models.Diet, error) {
	f := newFormReader(r)
	diet := models.Diet{
		Meal:     f.str("meal"),
		Calories: f.int("calories"),
		Protein:  f.int("protein"),
	}
	return diet, f.err
}

func (h *Handlers) AddDietFormHandler(w http.ResponseWriter, r *http.Request) {
	diet, err := dietFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.store.CreateDiet(r.Context(), diet); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("diet", "create")
	redirectToIndex(w, r)
}

type editDietPage struct {
	ID   int64
	Diet *models.Diet
}

func (h *Handlers) EditDietHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	diet, err := h.store.GetDiet(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "update_diet.html", editDietPage{ID: id, Diet: diet})
}

func (h *Handlers) UpdateDietHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	diet, err := dietFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	diet.ID = id
	if err := h.store.UpdateDiet(r.Context(), diet); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("diet", "update")
	redirectToIndex(w, r)
}

func (h *Handlers) DeleteDietHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteDiet(r.Context(), id); err != nil {
		h.serverError(w, r, err)
		return
	}
	observability.RecordMutation("diet", "delete")
	redirectToIndex(w, r)
}
