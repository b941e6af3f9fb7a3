package actions

import (
	"slices"

	"github.com/Trippy-actions/server/internal/agent/model"
)

// OfferState is the phase of an offer-and-exclude loop.
type OfferState int

const (
	// OfferIdle: nothing has been offered beyond the seed.
	OfferIdle OfferState = iota
	// OfferOffered: a candidate is on the table, waiting for the user to commit.
	OfferOffered
	// OfferExhausted: the backend had nothing left to offer.
	OfferExhausted
)

func (s OfferState) String() string {
	switch s {
	case OfferIdle:
		return "idle"
	case OfferOffered:
		return "offered"
	case OfferExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Offer is the tagged state of a loop. ID is the most recently offered
// candidate; it is set for OfferOffered and, when something was offered
// before the backend ran dry, for OfferExhausted.
type Offer struct {
	State OfferState
	ID    int
	HasID bool
}

// Pending returns the candidate a commit would take.
func (o Offer) Pending() (int, bool) {
	return o.ID, o.HasID
}

// OfferLoop binds an offer-and-exclude loop to its tracker slots. The
// exclusion list grows by one id per offer; committing pops the most
// recent id. The seed stands for ids excluded before any offer was made.
type OfferLoop struct {
	ExcludedSlot  string
	ExhaustedSlot string
	Seed          []int
}

// Excluded returns the current exclusion list. An unset or empty slot
// yields the seed.
func (l OfferLoop) Excluded(t *model.Tracker) []int {
	ids, _ := t.SlotInts(l.ExcludedSlot)
	if len(ids) == 0 {
		return append([]int{}, l.Seed...)
	}
	return ids
}

// Current derives the loop state from the tracker.
func (l OfferLoop) Current(t *model.Tracker) Offer {
	var o Offer
	o.ID, o.HasID = l.pending(l.Excluded(t))
	switch {
	case t.SlotBool(l.ExhaustedSlot):
		o.State = OfferExhausted
	case o.HasID:
		o.State = OfferOffered
	default:
		o.State = OfferIdle
	}
	return o
}

// pending returns the last id offered past the seed. A list that starts
// with the seed is offered once it grows beyond it; any other list is
// offered when its last id is not a seed member.
func (l OfferLoop) pending(ids []int) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	last := ids[len(ids)-1]
	if len(ids) >= len(l.Seed) && slices.Equal(ids[:len(l.Seed)], l.Seed) {
		return last, len(ids) > len(l.Seed)
	}
	return last, !slices.Contains(l.Seed, last)
}

// Present records that id was offered: Idle/Offered -> Offered(id).
func (l OfferLoop) Present(t *model.Tracker, id int) []model.Event {
	ids := append(l.Excluded(t), id)
	return []model.Event{
		model.SlotSet(l.ExcludedSlot, idsValue(ids)),
		model.SlotSet(l.ExhaustedSlot, false),
	}
}

// Exhaust records that nothing is left to offer: any -> Exhausted.
func (l OfferLoop) Exhaust(t *model.Tracker) []model.Event {
	return []model.Event{
		model.SlotSet(l.ExcludedSlot, idsValue(l.Excluded(t))),
		model.SlotSet(l.ExhaustedSlot, true),
	}
}

// Commit pops the pending candidate and resets the loop to Idle or to the
// previous offer. ok is false when nothing was offered; the returned events
// then only reset the exhaustion flag.
func (l OfferLoop) Commit(t *model.Tracker) (id int, events []model.Event, ok bool) {
	ids := l.Excluded(t)
	id, ok = l.Current(t).Pending()
	if ok {
		ids = ids[:len(ids)-1]
	}
	events = []model.Event{
		model.SlotSet(l.ExcludedSlot, idsValue(ids)),
		model.SlotSet(l.ExhaustedSlot, false),
	}
	return id, events, ok
}

var (
	flightLoop = OfferLoop{
		ExcludedSlot:  model.SlotUndesiredFlightIDs,
		ExhaustedSlot: model.SlotNoAvailableFlight,
		Seed:          []int{1},
	}
	roomLoop = OfferLoop{
		ExcludedSlot:  model.SlotUndesiredHotelIDs,
		ExhaustedSlot: model.SlotNoAvailableRoom,
	}
)
