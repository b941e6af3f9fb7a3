package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/graph/observers"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

// ErrUnknownTool is returned by Invoke for names no tool is registered under.
var ErrUnknownTool = errors.New("unknown tool")

// Runner executes action tools through an eino ToolsNode, the same way an
// LLM orchestrator would execute a model's tool calls.
type Runner struct {
	tools []tool.BaseTool
	infos []*schema.ToolInfo
	names map[string]bool
	node  *compose.ToolsNode
}

func NewRunner(ctx context.Context, reg *actions.Registry) (*Runner, error) {
	actionTools := GetActionTools(reg)
	infos, err := GetToolInfos(ctx, actionTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return nil, fmt.Errorf("failed to get tool infos: %w", err)
	}

	names := make(map[string]bool, len(infos))
	for _, info := range infos {
		names[info.Name] = true
	}

	node, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               actionTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			logx.Warn().Str("tool_name", name).Msg("Unknown tool call")
			return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
		},
		ToolArgumentsHandler: func(ctx context.Context, name, arguments string) (string, error) {
			var m map[string]any
			if err := json.Unmarshal([]byte(arguments), &m); err != nil {
				return arguments, nil
			}
			b, err := json.Marshal(normalizeArguments(m))
			if err != nil {
				return arguments, nil
			}
			return string(b), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return nil, fmt.Errorf("failed to create tools node: %w", err)
	}

	return &Runner{tools: actionTools, infos: infos, names: names, node: node}, nil
}

// Infos returns the ToolInfo of every action tool.
func (r *Runner) Infos() []*schema.ToolInfo {
	return r.infos
}

// Tools returns the action tools, e.g. to bind them to a chat model.
func (r *Runner) Tools() []tool.BaseTool {
	return r.tools
}

// Invoke runs the tool called name with JSON arguments and returns the
// decoded output.
func (r *Runner) Invoke(ctx context.Context, name, arguments string) (*ActionOutput, error) {
	if !r.names[name] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if arguments == "" {
		arguments = "{}"
	}

	ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{
		Name:      name,
		Type:      "ActionTool",
		Component: components.ComponentOfTool,
	}, observers.NewToolCallbacks())

	call := schema.ToolCall{
		ID: "call_" + uuid.NewString(),
		Function: schema.FunctionCall{
			Name:      name,
			Arguments: arguments,
		},
	}
	msgs, err := r.node.Invoke(ctx, schema.AssistantMessage("", []schema.ToolCall{call}))
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("tool %s returned no result", name)
	}

	var out ActionOutput
	if err := json.Unmarshal([]byte(msgs[0].Content), &out); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", name, err)
	}
	return &out, nil
}
