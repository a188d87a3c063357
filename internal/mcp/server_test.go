package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/store/sqlstore"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*MCPServer, *sqlstore.SQLStore) {
	t.Helper()
	// Setup in-memory DB
	s, err := sqlstore.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))

	m := NewMCPServer(s)
	m.now = func() time.Time { return time.Date(2025, time.March, 9, 6, 30, 0, 0, time.Local) }
	return m, s
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected TextContent")
	return textContent.Text
}

func TestListWorkoutsTool(t *testing.T) {
	m, s := newTestServer(t)
	ctx := context.Background()

	_, err := s.CreateWorkout(ctx, models.Workout{Type: "running", Duration: 30, Calories: 250})
	require.NoError(t, err)
	_, err = s.CreateWorkout(ctx, models.Workout{Type: "swimming", Duration: 40, Calories: 350})
	require.NoError(t, err)

	result, err := m.listWorkoutsHandler(ctx, callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var workouts []models.Workout
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &workouts))
	require.Len(t, workouts, 2)
	assert.Equal(t, "swimming", workouts[0].Type)
}

func TestAddWorkoutTool(t *testing.T) {
	m, s := newTestServer(t)
	ctx := context.Background()

	result, err := m.addWorkoutHandler(ctx, callRequest(map[string]any{
		"type":     "cycling",
		"duration": float64(50),
		"calories": float64(420),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "Workout added with id 1", resultText(t, result))

	workouts, err := s.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Workout{{ID: 1, Type: "cycling", Duration: 50, Calories: 420}}, workouts)

	// Missing argument
	result, err = m.addWorkoutHandler(ctx, callRequest(map[string]any{"type": "cycling"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestAddDietTool(t *testing.T) {
	m, s := newTestServer(t)
	ctx := context.Background()

	result, err := m.addDietHandler(ctx, callRequest(map[string]any{
		"meal":     "lentil soup",
		"calories": float64(330),
		"protein":  float64(18),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = m.listDietsHandler(ctx, callRequest(nil))
	require.NoError(t, err)
	var diets []models.Diet
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &diets))
	assert.Equal(t, []models.Diet{{ID: 1, Meal: "lentil soup", Calories: 330, Protein: 18}}, diets)

	diets, err = s.ListDiets(ctx)
	require.NoError(t, err)
	assert.Len(t, diets, 1)
}

func TestAddWearableToolStampsNow(t *testing.T) {
	m, _ := newTestServer(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		result, err := m.addWearableHandler(ctx, callRequest(map[string]any{
			"heart_rate": float64(60 + i),
			"steps":      float64(100 * i),
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	result, err := m.listWearablesHandler(ctx, callRequest(nil))
	require.NoError(t, err)
	var wearables []models.Wearable
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &wearables))
	require.Len(t, wearables, 10)
	assert.Equal(t, 71, wearables[0].HeartRate)
	assert.Equal(t, "2025-03-09 06:30:00", wearables[0].RecordedAt)

	result, err = m.addWearableHandler(ctx, callRequest(map[string]any{"steps": float64(5)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestToolReportsDatabaseError(t *testing.T) {
	m, s := newTestServer(t)
	require.NoError(t, s.Close())

	result, err := m.listDietsHandler(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "database error")
}

func TestHandlerIsMountable(t *testing.T) {
	m, _ := newTestServer(t)
	assert.NotNil(t, m.Handler())
}
