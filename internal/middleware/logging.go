package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/observability"
)

type contextKey string

const RequestIDKey contextKey = "requestID"

// RequestIDHeader carries the per-request identifier back to the caller.
const RequestIDHeader = "X-Request-ID"

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Flush lets streaming handlers (the MCP endpoint) push partial responses.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// RequestIDFromContext returns the id assigned by Logging, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Logging tags every request with an id, logs it once it completes and feeds
// the HTTP collectors.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, id))
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		// The mux fills in Pattern on the request it routed.
		observability.ObserveRequest(r.Pattern, r.Method, rec.status, elapsed)
		log.Printf("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Microsecond), id)
	})
}
