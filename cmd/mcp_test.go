package cmd

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zer3az/chatbot/internal/app"
	"github.com/zer3az/chatbot/internal/config"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/telemetry"
)

type recordingClient struct {
	events []telemetry.Event
}

func (r *recordingClient) Record(ev telemetry.Event) { r.events = append(r.events, ev) }
func (r *recordingClient) Close() error              { return nil }

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	v := viper.New()
	config.Configure(v)
	v.Set("session.backend", "memory")
	cfg, err := config.Load(v)
	require.NoError(t, err)

	a, err := app.New(context.Background(), app.Options{Config: cfg, Viper: v, LocalOnly: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func resultText(t *testing.T, res *mcpsdk.CallToolResultFor[any]) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestNewMCPServer(t *testing.T) {
	assert.NotNil(t, newMCPServer(newTestApp(t)))
}

func TestMCPTableHandler(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name      string
		tool      string
		args      map[string]any
		wantError bool
		want      string
	}{
		{name: "details", tool: "get_plant_details", args: map[string]any{"plant_id": float64(3)}, want: "Zea mays"},
		{name: "rank", tool: "rank_plants", args: map[string]any{"metric": "drought"}, want: `"rank": 1`},
		{name: "zone stats", tool: "get_zone_statistics", args: map[string]any{"zone": "Sahara"}, want: "Sorghum"},
		{name: "missing plant", tool: "get_plant_details", args: map[string]any{"plant_id": float64(99)}, wantError: true, want: "plant not found"},
		{name: "bad metric", tool: "rank_plants", args: map[string]any{"metric": "flavour"}, wantError: true, want: "unknown metric"},
		{name: "nil args", tool: "search_plants", args: nil, wantError: true, want: "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mcpTableHandler(a.Tools, a.Telemetry, tt.tool)
			res, err := h(context.Background(), nil, &mcpsdk.CallToolParamsFor[map[string]any]{Name: tt.tool, Arguments: tt.args})
			require.NoError(t, err)
			assert.Equal(t, tt.wantError, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestMCPTableHandler_RecordsToolEvents(t *testing.T) {
	a := newTestApp(t)
	rec := &recordingClient{}

	ok := mcpTableHandler(a.Tools, rec, "get_plant_details")
	_, err := ok(context.Background(), nil, &mcpsdk.CallToolParamsFor[map[string]any]{Arguments: map[string]any{"plant_id": float64(1)}})
	require.NoError(t, err)
	_, err = ok(context.Background(), nil, &mcpsdk.CallToolParamsFor[map[string]any]{Arguments: map[string]any{"plant_id": float64(42)}})
	require.NoError(t, err)

	assert.Equal(t, []telemetry.Event{
		telemetry.ToolExecuted{Tool: "get_plant_details", Transport: "mcp"},
		telemetry.ToolExecuted{Tool: "get_plant_details", Transport: "mcp", Failed: true},
	}, rec.events)
}

func TestMCPAskHandler(t *testing.T) {
	a := newTestApp(t)
	h := mcpAskHandler(a)

	res, err := h(context.Background(), nil, &mcpsdk.CallToolParamsFor[AskParams]{Arguments: AskParams{Message: "  "}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), a.Persona.Errors.MessageRequired)

	res, err = h(context.Background(), nil, &mcpsdk.CallToolParamsFor[AskParams]{Arguments: AskParams{Message: "best for drought", SessionID: "mcp-1"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "Sorghum")
	assert.Contains(t, text, "_via "+dispatch.ServiceName+"_")

	history, err := a.Chat.History(context.Background(), "mcp-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
