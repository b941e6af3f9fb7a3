package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Entity struct {
	Entity     string  `json:"entity"`
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence,omitempty"`
}

type LatestMessage struct {
	Text     string   `json:"text,omitempty"`
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities,omitempty"`
}

// Tracker is the read-only conversation state an action receives.
// Actions never write to it; they return events instead.
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage LatestMessage  `json:"latest_message"`
	Events        []Event        `json:"events,omitempty"`
}

// GetSlot returns the raw slot value or nil.
func (t *Tracker) GetSlot(name string) any {
	if t == nil || t.Slots == nil {
		return nil
	}
	return t.Slots[name]
}

// SlotString returns the slot as a string, "" when unset.
func (t *Tracker) SlotString(name string) string {
	switch v := t.GetSlot(name).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// SlotBool returns the slot as a bool, false when unset.
func (t *Tracker) SlotBool(name string) bool {
	switch v := t.GetSlot(name).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// SlotInts returns a list slot as ints. Elements that are not numeric are skipped.
// The second return value is false when the slot is unset.
func (t *Tracker) SlotInts(name string) ([]int, bool) {
	raw := t.GetSlot(name)
	if raw == nil {
		return nil, false
	}
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []int:
		return append([]int(nil), v...), true
	default:
		items = []any{v}
	}
	out := make([]int, 0, len(items))
	for _, it := range items {
		if n, ok := toInt(it); ok {
			out = append(out, n)
		}
	}
	return out, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// LatestEntityValues returns the values of entity in the latest user message.
func (t *Tracker) LatestEntityValues(entity string) []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, e := range t.LatestMessage.Entities {
		if e.Entity != entity || e.Value == nil {
			continue
		}
		out = append(out, fmt.Sprint(e.Value))
	}
	return out
}

// FirstEntity returns the first value of entity in the latest user message.
func (t *Tracker) FirstEntity(entity string) (string, bool) {
	vals := t.LatestEntityValues(entity)
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// LatestIntent returns the intent name of the latest user message.
func (t *Tracker) LatestIntent() string {
	if t == nil {
		return ""
	}
	return t.LatestMessage.Intent.Name
}

// SlotsToValidate returns the slots set by the trailing run of slot events,
// i.e. the values extracted from the latest user message. When the tracker
// carries no such events, the value of requested_slot is returned.
func (t *Tracker) SlotsToValidate() map[string]any {
	out := make(map[string]any)
	if t == nil {
		return out
	}
	for i := len(t.Events) - 1; i >= 0; i-- {
		e := t.Events[i]
		if !e.IsSlot() {
			break
		}
		if _, seen := out[e.Name]; !seen {
			out[e.Name] = e.Value
		}
	}
	if len(out) > 0 {
		return out
	}
	if requested := t.SlotString(SlotRequested); requested != "" {
		if v := t.GetSlot(requested); v != nil {
			out[requested] = v
		}
	}
	return out
}
