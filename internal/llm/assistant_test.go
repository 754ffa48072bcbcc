package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/retry"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/tools"
)

func fastRetry() AssistantOption {
	return WithRetryPolicy(&retry.Policy{MaxAttempts: 2, InitialDelay: time.Millisecond, Multiplier: 1, RetryIf: retry.IsRetryable})
}

func toolTable() *tools.Table {
	c := catalog.Default()
	return tools.New(c, dispatch.New(c))
}

func TestAssistant_ConversationRoles(t *testing.T) {
	fm := answering("ok")
	a, err := NewAssistant(context.Background(), ProviderGemini, fm, "SYSTEM", nil)
	require.NoError(t, err)

	history := []session.Message{
		{Role: session.RoleUser, Content: "wheat"},
		{Role: session.RoleBot, Content: "Bread Wheat"},
		{Role: session.RoleAssistant, Content: ""},
	}
	got, err := a.Reply(context.Background(), "and barley?", history)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	in := fm.inputs[0]
	require.Len(t, in, 4, "blank history entries are dropped")
	assert.Equal(t, schema.System, in[0].Role)
	assert.Equal(t, "SYSTEM", in[0].Content)
	assert.Equal(t, schema.User, in[1].Role)
	assert.Equal(t, schema.Assistant, in[2].Role)
	assert.Equal(t, schema.User, in[3].Role)
	assert.Equal(t, "and barley?", in[3].Content)
	assert.Empty(t, fm.tools[0], "no tools bound without a table")
}

func TestAssistant_ToolLoop(t *testing.T) {
	fm := &fakeModel{respond: func(call int, _ context.Context, input []*schema.Message) (*schema.Message, error) {
		if call == 1 {
			return schema.AssistantMessage("", []schema.ToolCall{{
				ID:       "call_1",
				Function: schema.FunctionCall{Name: "rank_plants", Arguments: `{"metric":"drought"}`},
			}}), nil
		}
		last := input[len(input)-1]
		if last.Role != schema.Tool || !strings.Contains(last.Content, "Sorghum") {
			return nil, errors.New("expected rank_plants result")
		}
		return schema.AssistantMessage("Sorghum leads with 9/10 drought resistance.", nil), nil
	}}

	a, err := NewAssistant(context.Background(), ProviderAnthropic, fm, "SYSTEM", toolTable())
	require.NoError(t, err)

	got, err := a.Reply(context.Background(), "which plant resists drought best?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sorghum leads with 9/10 drought resistance.", got)
	assert.Equal(t, 2, fm.callCount())

	names := make([]string, 0, len(fm.tools[0]))
	for _, info := range fm.tools[0] {
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "rank_plants")
	assert.Contains(t, names, "generate_detailed_report")
}

func TestAssistant_ToolErrorReturnedToModel(t *testing.T) {
	fm := &fakeModel{respond: func(call int, _ context.Context, input []*schema.Message) (*schema.Message, error) {
		if call == 1 {
			return schema.AssistantMessage("", []schema.ToolCall{{
				ID:       "call_1",
				Function: schema.FunctionCall{Name: "get_plant_details", Arguments: `{"plant_id": 99}`},
			}}), nil
		}
		return schema.AssistantMessage(input[len(input)-1].Content, nil), nil
	}}
	a, err := NewAssistant(context.Background(), ProviderOpenAI, fm, "SYSTEM", toolTable())
	require.NoError(t, err)

	got, err := a.Reply(context.Background(), "plant 99?", nil)
	require.NoError(t, err)
	assert.Contains(t, got, "error")
}

func TestAssistant_MaxIterations(t *testing.T) {
	fm := &fakeModel{respond: func(call int, _ context.Context, _ []*schema.Message) (*schema.Message, error) {
		return schema.AssistantMessage("thinking", []schema.ToolCall{{
			ID:       "call",
			Function: schema.FunctionCall{Name: "search_plants", Arguments: `{"query":"wheat"}`},
		}}), nil
	}}
	a, err := NewAssistant(context.Background(), ProviderGemini, fm, "SYSTEM", toolTable(), WithMaxIterations(3))
	require.NoError(t, err)

	got, err := a.Reply(context.Background(), "loop", nil)
	require.NoError(t, err)
	assert.Equal(t, "thinking", got, "last non-empty content is used")
	assert.Equal(t, 3, fm.callCount())
}

func TestAssistant_RetriesOnce(t *testing.T) {
	fm := &fakeModel{respond: func(call int, _ context.Context, _ []*schema.Message) (*schema.Message, error) {
		if call == 1 {
			return nil, errors.New("503 overloaded")
		}
		return schema.AssistantMessage("second time lucky", nil), nil
	}}
	a, err := NewAssistant(context.Background(), ProviderGemini, fm, "SYSTEM", nil, fastRetry())
	require.NoError(t, err)

	got, err := a.Reply(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", got)
	assert.Equal(t, 2, fm.callCount())
}

func TestAssistant_TimeoutPerAttempt(t *testing.T) {
	fm := &fakeModel{respond: func(_ int, ctx context.Context, _ []*schema.Message) (*schema.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	a, err := NewAssistant(context.Background(), ProviderGemini, fm, "SYSTEM", nil,
		WithTimeout(20*time.Millisecond), fastRetry())
	require.NoError(t, err)

	_, err = a.Reply(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, fm.callCount())
}

func TestAssistant_EmptyResponse(t *testing.T) {
	a, err := NewAssistant(context.Background(), ProviderGemini, answering("   "), "SYSTEM", nil, fastRetry())
	require.NoError(t, err)

	_, err = a.Reply(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAssistant_ToolsRejectedFallsBackWithoutTools(t *testing.T) {
	fm := &fakeModel{}
	fm.respond = func(call int, _ context.Context, _ []*schema.Message) (*schema.Message, error) {
		if len(fm.tools[call-1]) > 0 {
			return nil, errors.New("status 400: tools not supported")
		}
		return schema.AssistantMessage("plain answer", nil), nil
	}
	a, err := NewAssistant(context.Background(), ProviderOllama, fm, "SYSTEM", toolTable())
	require.NoError(t, err)

	got, err := a.Reply(context.Background(), "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain answer", got)
	assert.Equal(t, 2, fm.callCount())
}

func TestAssistant_UnrelatedFourHundredKeepsTools(t *testing.T) {
	fm := &fakeModel{respond: func(int, context.Context, []*schema.Message) (*schema.Message, error) {
		return nil, errors.New("prompt of 4000 tokens exceeds the context window")
	}}
	a, err := NewAssistant(context.Background(), ProviderOllama, fm, "SYSTEM", toolTable(), WithRetryPolicy(retry.NoRetry()))
	require.NoError(t, err)

	_, err = a.Reply(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Equal(t, 1, fm.callCount(), "no second call without tools")
	assert.NotEmpty(t, fm.tools[0])
}
