package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// fakeModel is a scripted eino chat model.
type fakeModel struct {
	mu      sync.Mutex
	calls   int
	inputs  [][]*schema.Message
	tools   [][]*schema.ToolInfo
	respond func(call int, ctx context.Context, input []*schema.Message) (*schema.Message, error)
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.inputs = append(f.inputs, input)
	f.tools = append(f.tools, model.GetCommonOptions(&model.Options{}, opts...).Tools)
	f.mu.Unlock()
	return f.respond(call, ctx, input)
}

func (f *fakeModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func answering(text string) *fakeModel {
	return &fakeModel{respond: func(int, context.Context, []*schema.Message) (*schema.Message, error) {
		return schema.AssistantMessage(text, nil), nil
	}}
}

var _ model.BaseChatModel = (*fakeModel)(nil)
