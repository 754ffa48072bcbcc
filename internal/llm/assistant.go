package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/retry"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/tools"
)

// ErrEmptyResponse is returned when a model answers with no text.
var ErrEmptyResponse = errors.New("empty model response")

// Assistant answers chat messages with one remote model, optionally calling catalog tools.
type Assistant struct {
	provider    Provider
	chatModel   model.BaseChatModel
	instruction string

	toolsNode *compose.ToolsNode
	toolInfos []*schema.ToolInfo

	timeout  time.Duration
	maxIters int
	policy   *retry.Policy
	log      *logger.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*Assistant)

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) AssistantOption {
	return func(a *Assistant) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithMaxIterations caps the number of model turns in one reply.
func WithMaxIterations(n int) AssistantOption {
	return func(a *Assistant) {
		if n > 0 {
			a.maxIters = n
		}
	}
}

// WithRetryPolicy replaces the default single retry.
func WithRetryPolicy(p *retry.Policy) AssistantOption {
	return func(a *Assistant) { a.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) AssistantOption {
	return func(a *Assistant) { a.log = l }
}

// NewAssistant wraps chatModel with the system instruction. A nil table disables tool calling.
func NewAssistant(ctx context.Context, provider Provider, chatModel model.BaseChatModel, instruction string, table *tools.Table, opts ...AssistantOption) (*Assistant, error) {
	a := &Assistant{
		provider:    provider,
		chatModel:   chatModel,
		instruction: instruction,
		timeout:     DefaultTimeout,
		maxIters:    DefaultMaxIterations,
		policy:      retry.ProviderPolicy(),
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if table != nil {
		toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
			Tools: table.EinoTools(),
		})
		if err != nil {
			return nil, fmt.Errorf("create tools node: %w", err)
		}
		infos, err := table.ToolInfos(ctx)
		if err != nil {
			return nil, fmt.Errorf("build tool infos: %w", err)
		}
		a.toolsNode = toolsNode
		a.toolInfos = infos
	}
	return a, nil
}

// Provider returns the provider the assistant calls.
func (a *Assistant) Provider() Provider { return a.provider }

// Reply answers message in the context of history. Each attempt is bounded by the
// assistant timeout and failed attempts are retried per the retry policy.
func (a *Assistant) Reply(ctx context.Context, message string, history []session.Message) (string, error) {
	base := a.conversation(message, history)

	return retry.DoWithResult(ctx, a.policy, func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		start := time.Now()
		text, err := a.run(callCtx, append([]*schema.Message(nil), base...))
		if err != nil {
			a.log.Warn().Str("provider", string(a.provider)).Dur("elapsed", time.Since(start)).Err(err).Msg("model call failed")
			return "", err
		}
		a.log.Debug().Str("provider", string(a.provider)).Dur("elapsed", time.Since(start)).Msg("model replied")
		return text, nil
	})
}

// conversation builds system + history + user messages. Any non-user role is sent as assistant.
func (a *Assistant) conversation(message string, history []session.Message) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(a.instruction))
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		if h.IsUser() {
			msgs = append(msgs, schema.UserMessage(h.Content))
		} else {
			msgs = append(msgs, schema.AssistantMessage(h.Content, nil))
		}
	}
	return append(msgs, schema.UserMessage(message))
}

// run is the ReAct loop: model -> (tool calls -> tool results -> model)* -> final answer.
func (a *Assistant) run(ctx context.Context, messages []*schema.Message) (string, error) {
	var opts []model.Option
	if a.toolsNode != nil {
		opts = append(opts, model.WithTools(a.toolInfos))
	}

	var last string
	for iter := 0; iter < a.maxIters; iter++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := a.chatModel.Generate(ctx, messages, opts...)
		if err != nil {
			// Some models reject tool bindings outright; retry the turn without them.
			if iter == 0 && len(opts) > 0 && toolsRejected(err) {
				a.log.Debug().Str("provider", string(a.provider)).Msg("tool calling rejected, retrying without tools")
				opts = nil
				resp, err = a.chatModel.Generate(ctx, messages)
			}
			if err != nil {
				return "", fmt.Errorf("generate (iter %d): %w", iter+1, err)
			}
		}
		messages = append(messages, resp)
		if c := strings.TrimSpace(resp.Content); c != "" {
			last = c
		}

		if len(resp.ToolCalls) == 0 || a.toolsNode == nil {
			if last == "" {
				return "", ErrEmptyResponse
			}
			return last, nil
		}

		for _, tc := range resp.ToolCalls {
			a.log.Debug().Str("tool", tc.Function.Name).Msg("tool call")
		}
		results, err := a.toolsNode.Invoke(ctx, resp)
		if err != nil {
			results = toolErrorMessages(resp.ToolCalls, err)
		}
		messages = append(messages, results...)
	}

	if last == "" {
		return "", fmt.Errorf("no answer after %d iterations", a.maxIters)
	}
	return last, nil
}

// toolErrorMessages reports a failed tool batch back to the model, one message per call id.
func toolErrorMessages(calls []schema.ToolCall, err error) []*schema.Message {
	out := make([]*schema.Message, 0, len(calls))
	for _, tc := range calls {
		out = append(out, schema.ToolMessage(fmt.Sprintf(`{"error": %q}`, err.Error()), tc.ID))
	}
	return out
}
