package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/model"
)

func echoRegistry(t *testing.T) *actions.Registry {
	t.Helper()
	echo := actions.NewAction("action_echo", "Echo the destination slot.",
		func(ctx context.Context, d model.Dispatcher, tr *model.Tracker) ([]model.Event, error) {
			dest, _ := tr.FirstEntity(model.EntityDestination)
			model.Text(d, "%s:%s:%s", tr.LatestIntent(), tr.SlotString(model.SlotUsername), dest)
			return []model.Event{model.SlotSet(model.SlotDestination, dest)}, nil
		})
	fail := actions.NewAction("action_fail", "Always fails.",
		func(context.Context, model.Dispatcher, *model.Tracker) ([]model.Event, error) {
			return nil, errors.New("boom")
		})
	reg, err := actions.NewRegistry(echo, fail)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestGetToolInfos(t *testing.T) {
	reg := echoRegistry(t)
	infos, err := GetToolInfos(t.Context(), GetActionTools(reg))
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].Name != "action_echo" || infos[1].Name != "action_fail" {
		t.Fatalf("infos = %+v", infos)
	}
	if infos[0].Desc != "Echo the destination slot." {
		t.Errorf("desc = %q", infos[0].Desc)
	}
}

func TestRunnerInvoke(t *testing.T) {
	r, err := NewRunner(t.Context(), echoRegistry(t))
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Invoke(t.Context(), "action_echo",
		`{"intent":" book_package ","slots":{"username":"alice"},"entities":[{"entity":"destination","value":"Kobe"}],"bogus":1}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Responses) != 1 || out.Responses[0].Text != "book_package:alice:Kobe" {
		t.Errorf("responses = %+v", out.Responses)
	}
	if len(out.Events) != 1 || out.Events[0].Name != model.SlotDestination || out.Events[0].Value != "Kobe" {
		t.Errorf("events = %+v", out.Events)
	}
}

func TestRunnerInvokeErrors(t *testing.T) {
	r, err := NewRunner(t.Context(), echoRegistry(t))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Invoke(t.Context(), "action_missing", "{}"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("err = %v, want ErrUnknownTool", err)
	}
	if _, err := r.Invoke(t.Context(), "action_fail", ""); err == nil {
		t.Error("expected failing action to surface an error")
	}
}

func TestNormalizeArguments(t *testing.T) {
	got := normalizeArguments(map[string]any{"intent": "  greet ", "unknown": true, "slots": map[string]any{}})
	if got["intent"] != "greet" {
		t.Errorf("intent = %#v", got["intent"])
	}
	if _, ok := got["unknown"]; ok {
		t.Error("unknown key kept")
	}
	if _, ok := got["slots"]; !ok {
		t.Error("slots dropped")
	}
}
