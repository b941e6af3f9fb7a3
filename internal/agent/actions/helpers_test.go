package actions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/Trippy-actions/server/internal/agent/backend"
	"github.com/Trippy-actions/server/internal/agent/model"
)

const testCoupon = 234

func newTestRegistry(t *testing.T, mux *http.ServeMux) *Registry {
	t.Helper()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	c, err := backend.NewClient(model.BackendConfig{URL: ts.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return Default(Deps{
		Backend: c,
		Catalog: model.DefaultCatalog(),
		IntN:    func(int) int { return testCoupon },
	})
}

func runAction(t *testing.T, r *Registry, name string, tr *model.Tracker) *Result {
	t.Helper()
	res, err := r.Run(t.Context(), name, tr)
	if err != nil {
		t.Fatalf("Run(%s): %v", name, err)
	}
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func tracker(slots map[string]any) *model.Tracker {
	if slots == nil {
		slots = map[string]any{}
	}
	return &model.Tracker{SenderID: "tester", Slots: slots}
}

// apply folds events into the tracker the way the dialogue engine would.
func apply(tr *model.Tracker, events []model.Event) {
	for _, e := range events {
		if e.IsSlot() {
			tr.Slots[e.Name] = e.Value
		}
	}
}

// slotValue returns the value of the last event setting name.
func slotValue(t *testing.T, events []model.Event, name string) any {
	t.Helper()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].IsSlot() && events[i].Name == name {
			return events[i].Value
		}
	}
	t.Fatalf("no event for slot %q in %+v", name, events)
	return nil
}

func hasSlotEvent(events []model.Event, name string) bool {
	return slices.ContainsFunc(events, func(e model.Event) bool {
		return e.IsSlot() && e.Name == name
	})
}

func texts(res *Result) []string {
	out := make([]string, 0, len(res.Messages))
	for _, m := range res.Messages {
		out = append(out, m.Text)
	}
	return out
}

func containsText(res *Result, want string) bool {
	return slices.Contains(texts(res), want)
}

func intsOf(t *testing.T, v any) []int {
	t.Helper()
	tr := tracker(map[string]any{"x": v})
	ids, ok := tr.SlotInts("x")
	if !ok {
		t.Fatalf("not a list: %#v", v)
	}
	return ids
}
