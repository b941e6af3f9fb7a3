package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/model"
)

// ===================================
// Action Tools
// ===================================

// ActionInput is the argument object of every action tool. It carries the
// slice of tracker state the action reads.
type ActionInput struct {
	SenderID string         `json:"sender_id,omitempty"`
	Slots    map[string]any `json:"slots,omitempty"`
	Intent   string         `json:"intent,omitempty"`
	Entities []model.Entity `json:"entities,omitempty"`
	Events   []model.Event  `json:"events,omitempty"`
	Text     string         `json:"text,omitempty"`
}

// Tracker rebuilds the tracker the action runs against.
func (in *ActionInput) Tracker() *model.Tracker {
	slots := in.Slots
	if slots == nil {
		slots = map[string]any{}
	}
	return &model.Tracker{
		SenderID: in.SenderID,
		Slots:    slots,
		LatestMessage: model.LatestMessage{
			Text:     in.Text,
			Intent:   model.Intent{Name: in.Intent},
			Entities: in.Entities,
		},
		Events: in.Events,
	}
}

// ActionOutput mirrors the webhook response body.
type ActionOutput struct {
	Events    []model.Event   `json:"events"`
	Responses []model.Message `json:"responses"`
}

var actionParams = map[string]*schema.ParameterInfo{
	"sender_id": {
		Type: schema.String,
		Desc: "Conversation id, used for logging only.",
	},
	"slots": {
		Type: schema.Object,
		Desc: "Current slot values keyed by slot name, e.g. username, destination, target_destination, undesired_flight_ids.",
	},
	"intent": {
		Type: schema.String,
		Desc: "Intent name of the latest user message, e.g. book_package or query_orders.",
	},
	"entities": {
		Type: schema.Array,
		Desc: "Entities of the latest user message.",
		ElemInfo: &schema.ParameterInfo{
			Type: schema.Object,
			SubParams: map[string]*schema.ParameterInfo{
				"entity": {Type: schema.String, Desc: "Entity name such as country or destination.", Required: true},
				"value":  {Type: schema.String, Desc: "Extracted value.", Required: true},
			},
		},
	},
	"events": {
		Type: schema.Array,
		Desc: "Recent tracker events; trailing slot events are the values form validators check.",
		ElemInfo: &schema.ParameterInfo{
			Type: schema.Object,
			SubParams: map[string]*schema.ParameterInfo{
				"event": {Type: schema.String, Desc: "Event type, \"slot\" for slot updates.", Required: true},
				"name":  {Type: schema.String, Desc: "Slot name."},
				"value": {Type: schema.String, Desc: "Slot value."},
			},
		},
	},
	"text": {
		Type: schema.String,
		Desc: "Raw text of the latest user message.",
	},
}

func createActionTool(reg *actions.Registry, a actions.Action) tool.InvokableTool {
	name := a.Name()
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        name,
			Desc:        a.Description(),
			ParamsOneOf: schema.NewParamsOneOfByParams(actionParams),
		},
		func(ctx context.Context, in *ActionInput) (*ActionOutput, error) {
			if in == nil {
				in = &ActionInput{}
			}
			res, err := reg.Run(ctx, name, in.Tracker())
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", name, err)
			}
			return &ActionOutput{Events: res.Events, Responses: res.Messages}, nil
		},
	)
}

// GetActionTools exposes every registered action as an eino tool.
func GetActionTools(reg *actions.Registry) []tool.BaseTool {
	list := reg.Actions()
	out := make([]tool.BaseTool, 0, len(list))
	for _, a := range list {
		out = append(out, createActionTool(reg, a))
	}
	return out
}

// GetToolInfos collects the ToolInfo of every tool.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// normalizeArguments trims string fields and drops keys the tools do not
// accept. Arguments that are not a JSON object are passed through.
func normalizeArguments(m map[string]any) map[string]any {
	for k, v := range m {
		if _, ok := actionParams[k]; !ok {
			delete(m, k)
			continue
		}
		if s, ok := v.(string); ok {
			m[k] = strings.TrimSpace(s)
		}
	}
	return m
}
