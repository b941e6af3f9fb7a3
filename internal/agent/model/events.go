package model

// EventSlot is the event type of a slot mutation.
const EventSlot = "slot"

// Event is a tracker event. Actions only ever produce slot events; the
// other kinds are decoded from the tracker to find the latest extractions.
type Event struct {
	Event     string  `json:"event"`
	Name      string  `json:"name,omitempty"`
	Value     any     `json:"value"`
	Timestamp float64 `json:"timestamp,omitempty"`
}

// SlotSet builds the event that sets slot name to value. A nil value clears the slot.
func SlotSet(name string, value any) Event {
	return Event{Event: EventSlot, Name: name, Value: value}
}

// IsSlot reports whether e mutates a slot.
func (e Event) IsSlot() bool {
	return e.Event == EventSlot
}
