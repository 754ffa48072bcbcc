package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/zer3az/chatbot/internal/catalog"
)

// EinoTool wraps a table entry as an eino invokable tool so chat models can call it.
type EinoTool struct {
	table *Table
	tool  Tool
}

// Info returns the tool metadata for LLM function calling.
func (t *EinoTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name:        t.tool.Name,
		Desc:        t.tool.Description,
		ParamsOneOf: schema.NewParamsOneOfByParams(paramInfos(t.tool.Params)),
	}, nil
}

// InvokableRun decodes the JSON arguments, runs the tool and returns the JSON result.
// Bad arguments and unknown plants are reported back to the model as text
// so it can correct itself instead of aborting the conversation.
func (t *EinoTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	params := map[string]any{}
	if argumentsInJSON != "" {
		if err := json.Unmarshal([]byte(argumentsInJSON), &params); err != nil {
			return fmt.Sprintf(`{"error": %q}`, "arguments must be a JSON object"), nil
		}
	}

	result, err := t.table.Execute(ctx, t.tool.Name, params)
	if err != nil {
		if errors.Is(err, ErrInvalidParams) || errors.Is(err, ErrUnknownTool) || errors.Is(err, catalog.ErrPlantNotFound) {
			return fmt.Sprintf(`{"error": %q}`, err.Error()), nil
		}
		return "", fmt.Errorf("tool %s: %w", t.tool.Name, err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", t.tool.Name, err)
	}
	return string(out), nil
}

var _ tool.InvokableTool = (*EinoTool)(nil)

// EinoTools returns every table entry as an eino tool.
func (t *Table) EinoTools() []tool.BaseTool {
	out := make([]tool.BaseTool, len(t.tools))
	for i, tl := range t.tools {
		out[i] = &EinoTool{table: t, tool: tl}
	}
	return out
}

// ToolInfos returns the eino schema of every tool, for model.WithTools.
func (t *Table) ToolInfos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(t.tools))
	for _, bt := range t.EinoTools() {
		info, err := bt.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func paramInfos(params []Param) map[string]*schema.ParameterInfo {
	out := make(map[string]*schema.ParameterInfo, len(params))
	for _, p := range params {
		info := &schema.ParameterInfo{
			Type:     schema.DataType(p.Type),
			Desc:     p.Description,
			Enum:     p.Enum,
			Required: p.Required,
		}
		if len(p.Properties) > 0 {
			info.SubParams = paramInfos(p.Properties)
		}
		out[p.Name] = info
	}
	return out
}
