package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/graph/tools"
	"github.com/Trippy-actions/server/internal/agent/model"
	"github.com/Trippy-actions/server/internal/core"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	greet := actions.NewAction("action_greet", "Greet the user.",
		func(ctx context.Context, d model.Dispatcher, tr *model.Tracker) ([]model.Event, error) {
			model.Text(d, "Hi %s", tr.SlotString(model.SlotUsername))
			return []model.Event{model.SlotSet(model.SlotLastIntent, nil)}, nil
		})
	panicky := actions.NewAction("action_panic", "Panics.",
		func(context.Context, model.Dispatcher, *model.Tracker) ([]model.Event, error) {
			panic("boom")
		})
	reg, err := actions.NewRegistry(greet, panicky)
	if err != nil {
		t.Fatal(err)
	}
	runner, err := tools.NewRunner(t.Context(), reg)
	if err != nil {
		t.Fatal(err)
	}
	return New(core.Testing, model.ServerConfig{CORSOrigins: []string{"*"}}, reg, runner)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhook(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/webhook", `{
		"next_action": "action_greet",
		"sender_id": "u1",
		"tracker": {"slots": {"username": "alice"}, "latest_message": {"intent": {"name": "greet"}}, "events": []}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}

	var body struct {
		Events    []map[string]any `json:"events"`
		Responses []model.Message  `json:"responses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Responses) != 1 || body.Responses[0].Text != "Hi alice" {
		t.Errorf("responses = %+v", body.Responses)
	}
	if len(body.Events) != 1 || body.Events[0]["event"] != "slot" || body.Events[0]["name"] != "last_intent" {
		t.Errorf("events = %+v", body.Events)
	}
	if v, ok := body.Events[0]["value"]; !ok || v != nil {
		t.Errorf("value = %#v, want explicit null", v)
	}
	if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("request id = %q", rec.Header().Get(HeaderRequestID))
	}
}

func TestWebhookErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown action", `{"next_action": "action_nope", "tracker": {}}`, http.StatusNotFound},
		{"malformed body", `{"next_action": `, http.StatusBadRequest},
		{"missing action", `{"tracker": {}}`, http.StatusBadRequest},
		{"panicking action", `{"next_action": "action_panic", "tracker": {}}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/webhook", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body=%s)", rec.Code, tt.want, rec.Body)
			}
		})
	}

	rec := do(t, s, http.MethodPost, "/webhook", `{"next_action": "action_nope", "tracker": {}}`)
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["action_name"] != "action_nope" || body["error"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderRequestID); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestListActionsAndTools(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/actions", "")
	var names []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &names); err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0]["name"] != "action_greet" {
		t.Errorf("actions = %v", names)
	}

	rec = do(t, s, http.MethodGet, "/tools", "")
	var infos struct {
		Tools []struct {
			Name string `json:"name"`
			Desc string `json:"desc"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatal(err)
	}
	if len(infos.Tools) != 2 || infos.Tools[0].Name != "action_greet" {
		t.Errorf("tools = %s", rec.Body)
	}
}

func TestInvokeTool(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/tools/action_greet", `{"slots": {"username": "bob"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out tools.ActionOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Responses) != 1 || out.Responses[0].Text != "Hi bob" {
		t.Errorf("responses = %+v", out.Responses)
	}

	if rec := do(t, s, http.MethodPost, "/tools/action_nope", `{}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown tool status = %d", rec.Code)
	}
}

func TestPanicIsAccessLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/webhook", `{"next_action": "action_panic", "tracker": {}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	var found bool
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry["message"] == "request" && entry["status"] == float64(http.StatusInternalServerError) {
			found = true
		}
	}
	if !found {
		t.Errorf("no access log line for the recovered panic:\n%s", buf.String())
	}
}
