package actions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Trippy-actions/server/internal/agent/model"
)

const defaultCouponDestination = "Praha"

// QueryAvailableFlight offers the next flight that is not excluded yet.
func (h *Handlers) QueryAvailableFlight(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	flight, err := h.backend.NextFlight(ctx,
		t.SlotString(model.SlotUsername),
		t.SlotString(model.SlotTargetDestination),
		flightLoop.Excluded(t),
	)
	if err != nil {
		genericError(d, ActionQueryAvailableFlight, err)
		return nil, nil
	}
	if flight == nil {
		model.Text(d, "Sorry, there is no other flight available at the moment.")
		return flightLoop.Exhaust(t), nil
	}

	model.Text(d, "I've found the next available flight offered by %s which will take off at %s from departure port %s.",
		flight.Airline, flight.DepartureTime, flight.DeparturePort)
	return flightLoop.Present(t, flight.ID), nil
}

// ChangeFlight commits the most recently offered flight.
func (h *Handlers) ChangeFlight(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	id, events, ok := flightLoop.Commit(t)
	events = append(events, model.SlotSet(model.SlotTargetDestination, nil))
	if !ok {
		model.Text(d, "Let me find you another flight first.")
		return events, nil
	}

	status, err := h.backend.ChangeFlight(ctx,
		t.SlotString(model.SlotUsername),
		t.SlotString(model.SlotTargetDestination),
		id,
	)
	if err != nil {
		genericError(d, ActionChangeFlight, err)
		return events, nil
	}

	switch status {
	case http.StatusOK:
		model.Text(d, "Flight changed! Your boarding pass can be printed at the airport lounge. Have a safe flight :)")
	case http.StatusNotFound:
		model.Text(d, "Sorry, I couldn't find an order to %s.", t.SlotString(model.SlotTargetDestination))
	default:
		genericError(d, ActionChangeFlight, fmt.Errorf("change flight returned %d", status))
	}
	return events, nil
}

// FindNewRoom offers the next room that is not excluded yet.
func (h *Handlers) FindNewRoom(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	room, err := h.backend.NextRoom(ctx,
		t.SlotString(model.SlotUsername),
		t.SlotString(model.SlotTargetDestination),
		roomLoop.Excluded(t),
	)
	if err != nil {
		genericError(d, ActionFindNewRoom, err)
		return nil, nil
	}
	if room == nil {
		model.Text(d, "Sorry, there is no other room available at the moment.")
		return roomLoop.Exhaust(t), nil
	}

	model.Text(d, "Here is a new room: a %s room at %s, %s (tel. %s) for %s.",
		room.RoomType, room.Hotel, room.Address, room.Telephone, money(room.Price))
	return roomLoop.Present(t, room.ID), nil
}

// ChangeNewRoom commits the most recently offered room.
func (h *Handlers) ChangeNewRoom(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	id, events, ok := roomLoop.Commit(t)
	events = append(events, model.SlotSet(model.SlotTargetDestination, nil))
	if !ok {
		model.Text(d, "Let me find you another room first.")
		return events, nil
	}

	status, err := h.backend.ChangeRoom(ctx,
		t.SlotString(model.SlotUsername),
		t.SlotString(model.SlotTargetDestination),
		id,
	)
	if err != nil {
		genericError(d, ActionChangeNewRoom, err)
		return events, nil
	}

	switch status {
	case http.StatusOK:
		model.Text(d, "Changed to the new room. Enjoy your stay!")
	case http.StatusNotFound:
		model.Text(d, "Sorry, I couldn't find an order to %s.", t.SlotString(model.SlotTargetDestination))
	default:
		genericError(d, ActionChangeNewRoom, fmt.Errorf("change room returned %d", status))
	}
	return events, nil
}

// ChangeGuide asks the backend to reassign the tour guide.
func (h *Handlers) ChangeGuide(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	destination := t.SlotString(model.SlotTargetDestination)
	done := []model.Event{model.SlotSet(model.SlotTargetDestination, nil)}

	status, guide, err := h.backend.ChangeGuide(ctx, t.SlotString(model.SlotUsername), destination)
	if err != nil {
		genericError(d, ActionChangeGuide, err)
		return done, nil
	}

	switch {
	case status == http.StatusOK && guide != nil:
		model.Text(d, "Your new guide is %s, the phone number is %s and the email is %s.",
			guide.Name, guide.PhoneNumber, guide.Email)
	case status == http.StatusNotFound:
		model.Text(d, "Sorry, I couldn't find an order to %s.", destination)
	default:
		genericError(d, ActionChangeGuide, fmt.Errorf("change guide returned %d", status))
	}
	return done, nil
}

// OfferCoupon hands out a restaurant coupon at the destination as compensation.
func (h *Handlers) OfferCoupon(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	destination, ok := t.FirstEntity(model.EntityDestination)
	if !ok || destination == "" {
		destination = defaultCouponDestination
	}

	restaurant, err := h.backend.Restaurant(ctx, destination)
	if err != nil {
		genericError(d, ActionOfferCoupon, err)
		return nil, nil
	}
	if restaurant == nil {
		model.Text(d, "Sorry, we don't have a partner restaurant in %s yet.", destination)
		return nil, nil
	}

	model.Text(d, "Here is a restaurant coupon for your compensation: %s", h.coupon(restaurant.Name))
	model.Text(d, "You can use it at %s, %s.", restaurant.Name, restaurant.Address)
	return nil, nil
}

// coupon renders Trippy@<name><1000..9999>.
func (h *Handlers) coupon(name string) string {
	return fmt.Sprintf("Trippy@%s%d", name, 1000+h.intN(9000))
}
