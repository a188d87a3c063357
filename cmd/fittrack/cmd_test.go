package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"fittrack/internal/store/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// flag values survive between Execute calls; later flags win
	rootCmd.SetArgs(append([]string{"--db-driver", "sqlite3"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestMigrateSeedAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fittrack.db")

	out, err := runCLI(t, "--db-conn", dbPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready (sqlite3)")

	out, err = runCLI(t, "--db-conn", dbPath, "list", "workouts", "-n", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts found.")

	out, err = runCLI(t, "--db-conn", dbPath, "seed", "--days", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "12 wearable readings")

	out, err = runCLI(t, "--db-conn", dbPath, "list", "wearables", "-n", "0")
	require.NoError(t, err)
	assert.Len(t, lines(out), 10)
	assert.Contains(t, out, "bpm")

	out, err = runCLI(t, "--db-conn", dbPath, "list", "diets", "-n", "3")
	require.NoError(t, err)
	assert.Len(t, lines(out), 3)
	assert.Contains(t, out, "g protein")
}

func TestListRejectsUnknownKind(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fittrack.db")
	_, err := runCLI(t, "--db-conn", dbPath, "list", "sleep")
	require.Error(t, err)
}

func TestUnknownDriverFails(t *testing.T) {
	_, err := runCLI(t, "--db-driver", "oracle", "--db-conn", "x", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLimit(t *testing.T) {
	items := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, limit(items, 2))
	assert.Equal(t, items, limit(items, 0))
	assert.Equal(t, items, limit(items, 10))
}

func newTestHandler(t *testing.T, mcpEnabled bool) http.Handler {
	t.Helper()
	st, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return newHandler(st, nil, mcpEnabled)
}

func TestHandlerServesRoutesAndMetrics(t *testing.T) {
	h := newTestHandler(t, true)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workouts", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fittrack_http_requests_total")
}

func TestHandlerMCPToggle(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		return req
	}

	rec := httptest.NewRecorder()
	newTestHandler(t, true).ServeHTTP(rec, newReq())
	assert.NotEqual(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	newTestHandler(t, false).ServeHTTP(rec, newReq())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
