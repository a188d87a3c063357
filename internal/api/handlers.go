// Package api exposes the HTML pages and JSON endpoints for workouts, diets
// and wearable readings.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fittrack/internal/insights"
	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/store"
)

// Handlers coordinates HTTP requests with the record store.
type Handlers struct {
	store    store.Store
	analyzer insights.Analyzer
	now      func() time.Time
}

// NewHandlers builds Handlers. analyzer may be nil, in which case the
// insights endpoint reports itself unavailable.
func NewHandlers(s store.Store, analyzer insights.Analyzer) *Handlers {
	return &Handlers{
		store:    s,
		analyzer: analyzer,
		now:      time.Now,
	}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.IndexHandler)
	mux.HandleFunc("GET /healthz", h.HealthzHandler)

	mux.HandleFunc("GET /workouts", h.ListWorkoutsHandler)
	mux.HandleFunc("POST /workouts", h.CreateWorkoutHandler)
	mux.HandleFunc("POST /add_workout", h.AddWorkoutFormHandler)
	mux.HandleFunc("GET /update_workout/{id}", h.EditWorkoutHandler)
	mux.HandleFunc("POST /update_workout/{id}", h.UpdateWorkoutHandler)
	mux.HandleFunc("GET /delete_workout/{id}", h.DeleteWorkoutHandler)

	mux.HandleFunc("GET /diets", h.ListDietsHandler)
	mux.HandleFunc("POST /diets", h.CreateDietHandler)
	mux.HandleFunc("POST /add_diet", h.AddDietFormHandler)
	mux.HandleFunc("GET /update_diet/{id}", h.EditDietHandler)
	mux.HandleFunc("POST /update_diet/{id}", h.UpdateDietHandler)
	mux.HandleFunc("GET /delete_diet/{id}", h.DeleteDietHandler)

	mux.HandleFunc("GET /wearables", h.ListWearablesHandler)
	mux.HandleFunc("POST /wearables", h.CreateWearableHandler)
	mux.HandleFunc("POST /add_wearable", h.AddWearableFormHandler)
	mux.HandleFunc("GET /update_wearable/{id}", h.EditWearableHandler)
	mux.HandleFunc("POST /update_wearable/{id}", h.UpdateWearableHandler)
	mux.HandleFunc("GET /delete_wearable/{id}", h.DeleteWearableHandler)

	mux.HandleFunc("POST /api/insights", h.InsightsHandler)
}

type indexPage struct {
	Workouts  []models.Workout
	Diets     []models.Diet
	Wearables []models.Wearable
}

// IndexHandler renders every record of every kind, newest first.
func (h *Handlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	workouts, err := h.store.ListWorkouts(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	diets, err := h.store.ListDiets(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	wearables, err := h.store.ListWearables(ctx, 0)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "index.html", indexPage{Workouts: workouts, Diets: diets, Wearables: wearables})
}

// HealthzHandler reports whether the database is reachable.
func (h *Handlers) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		log.Printf("healthz: %v", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// pathID reads the {id} wildcard. Anything that is not a non-negative integer
// is answered with 404, as if the route had not matched.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// serverError logs a storage or rendering failure and answers with a plain 500.
func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v request_id=%s", r.Method, r.URL.Path, err, middleware.RequestIDFromContext(r.Context()))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// apiServerError is serverError for the JSON endpoints.
func (h *Handlers) apiServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v request_id=%s", r.Method, r.URL.Path, err, middleware.RequestIDFromContext(r.Context()))
	writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
}

// formReader pulls fields out of a form body, remembering the first problem.
type formReader struct {
	r   *http.Request
	err error
}

// maxFormMemory bounds how much of a multipart body is held in memory.
const maxFormMemory = 32 << 20

// newFormReader accepts urlencoded and multipart bodies alike.
func newFormReader(r *http.Request) *formReader {
	f := &formReader{r: r}
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		f.err = fmt.Errorf("invalid form body: %w", err)
	}
	return f
}

func (f *formReader) str(key string) string {
	if f.err != nil {
		return ""
	}
	values, ok := f.r.PostForm[key]
	if !ok || len(values) == 0 {
		f.err = fmt.Errorf("missing field: %s", key)
		return ""
	}
	return values[0]
}

func (f *formReader) int(key string) int {
	raw := f.str(key)
	if f.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		f.err = fmt.Errorf("field %s must be an integer", key)
		return 0
	}
	return n
}

// decodeJSON decodes an object body into dst and returns its top-level keys,
// so callers can tell an absent key from a zero value.
func decodeJSON(r *http.Request, dst any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}
	return keys, nil
}

// requireFields checks that each name was sent with a non-null value.
func requireFields(keys map[string]json.RawMessage, names ...string) error {
	for _, name := range names {
		raw, ok := keys[name]
		if !ok {
			return fmt.Errorf("missing field: %s", name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("field %s must not be null", name)
		}
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
