package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the record store as Model Context Protocol tools.
type MCPServer struct {
	store store.Store
	now   func() time.Time
	mcp   *server.MCPServer
}

func NewMCPServer(s store.Store) *MCPServer {
	m := &MCPServer{
		store: s,
		now:   time.Now,
		mcp:   server.NewMCPServer("Fittrack", "1.0.0", server.WithToolCapabilities(false)),
	}
	m.registerTools()
	return m
}

// Handler serves the tools over stateless streamable HTTP.
func (m *MCPServer) Handler() http.Handler {
	return server.NewStreamableHTTPServer(m.mcp, server.WithStateLess(true))
}

func readOnly(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (m *MCPServer) registerTools() {
	m.mcp.AddTool(mcp.NewTool("list_workouts", readOnly(
		mcp.WithDescription("List every recorded workout, newest first."),
	)...), m.listWorkoutsHandler)

	m.mcp.AddTool(mcp.NewTool("list_diets", readOnly(
		mcp.WithDescription("List every recorded meal, newest first."),
	)...), m.listDietsHandler)

	m.mcp.AddTool(mcp.NewTool("list_wearables", readOnly(
		mcp.WithDescription("List the 10 most recent wearable readings."),
	)...), m.listWearablesHandler)

	m.mcp.AddTool(mcp.NewTool("add_workout",
		mcp.WithDescription("Record a workout."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Kind of workout, e.g. running")),
		mcp.WithNumber("duration", mcp.Required(), mcp.Description("Duration in minutes")),
		mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories burned")),
		mcp.WithDestructiveHintAnnotation(false),
	), m.addWorkoutHandler)

	m.mcp.AddTool(mcp.NewTool("add_diet",
		mcp.WithDescription("Record a meal."),
		mcp.WithString("meal", mcp.Required(), mcp.Description("What was eaten")),
		mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories consumed")),
		mcp.WithNumber("protein", mcp.Required(), mcp.Description("Protein in grams")),
		mcp.WithDestructiveHintAnnotation(false),
	), m.addDietHandler)

	m.mcp.AddTool(mcp.NewTool("add_wearable",
		mcp.WithDescription("Record a wearable reading, timestamped now."),
		mcp.WithNumber("heart_rate", mcp.Required(), mcp.Description("Heart rate in bpm")),
		mcp.WithNumber("steps", mcp.Required(), mcp.Description("Step count")),
		mcp.WithDestructiveHintAnnotation(false),
	), m.addWearableHandler)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (m *MCPServer) listWorkoutsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := m.store.ListWorkouts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	return jsonResult(workouts)
}

func (m *MCPServer) listDietsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diets, err := m.store.ListDiets(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	return jsonResult(diets)
}

func (m *MCPServer) listWearablesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wearables, err := m.store.ListWearables(ctx, store.WearableListLimit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	return jsonResult(wearables)
}

func (m *MCPServer) addWorkoutHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutType, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type is required"), nil
	}
	duration, err := request.RequireInt("duration")
	if err != nil {
		return mcp.NewToolResultError("duration is required"), nil
	}
	calories, err := request.RequireInt("calories")
	if err != nil {
		return mcp.NewToolResultError("calories is required"), nil
	}

	id, err := m.store.CreateWorkout(ctx, models.Workout{Type: workoutType, Duration: duration, Calories: calories})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	observability.RecordMutation("workout", "create")
	return mcp.NewToolResultText(fmt.Sprintf("Workout added with id %d", id)), nil
}

func (m *MCPServer) addDietHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meal, err := request.RequireString("meal")
	if err != nil {
		return mcp.NewToolResultError("meal is required"), nil
	}
	calories, err := request.RequireInt("calories")
	if err != nil {
		return mcp.NewToolResultError("calories is required"), nil
	}
	protein, err := request.RequireInt("protein")
	if err != nil {
		return mcp.NewToolResultError("protein is required"), nil
	}

	id, err := m.store.CreateDiet(ctx, models.Diet{Meal: meal, Calories: calories, Protein: protein})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	observability.RecordMutation("diet", "create")
	return mcp.NewToolResultText(fmt.Sprintf("Diet added with id %d", id)), nil
}

func (m *MCPServer) addWearableHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	heartRate, err := request.RequireInt("heart_rate")
	if err != nil {
		return mcp.NewToolResultError("heart_rate is required"), nil
	}
	steps, err := request.RequireInt("steps")
	if err != nil {
		return mcp.NewToolResultError("steps is required"), nil
	}

	id, err := m.store.CreateWearable(ctx, models.Wearable{
		HeartRate:  heartRate,
		Steps:      steps,
		RecordedAt: m.now().Format(models.RecordedAtLayout),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database error: %v", err)), nil
	}
	observability.RecordMutation("wearable", "create")
	return mcp.NewToolResultText(fmt.Sprintf("Wearable data added with id %d", id)), nil
}
