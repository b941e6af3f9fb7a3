package actions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Trippy-actions/server/internal/agent/model"
)

// CreateUserOrder books the first package of the destination slot. The
// destination slot is always cleared.
func (h *Handlers) CreateUserOrder(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	destination := t.SlotString(model.SlotDestination)
	username := t.SlotString(model.SlotUsername)
	done := []model.Event{model.SlotSet(model.SlotDestination, nil)}

	packages, err := h.backend.PackagesByDestination(ctx, destination)
	if err != nil {
		genericError(d, ActionCreateUserOrder, err)
		return done, nil
	}
	if len(packages) == 0 {
		model.Text(d, "Sorry, we don't have any package to %s at the moment.", destination)
		return done, nil
	}
	pkg := packages[0]

	status, err := h.backend.CreateOrder(ctx, username, pkg.ID)
	if err != nil {
		genericError(d, ActionCreateUserOrder, err)
		return done, nil
	}

	switch status {
	case http.StatusCreated:
		model.Text(d, "The order is created!")
		model.Text(d, "Your guide of the tour is %s, the phone number is %s and the email is %s.",
			pkg.Guide.Name, pkg.Guide.PhoneNumber, pkg.Guide.Email)
		model.Text(d, "We have also secured a hotel room for you at %s with our special discount, you only need to pay another %s to book the room.",
			pkg.Hotel.Name, money(pkg.Hotel.Price))
		model.Text(d, "We also found a good car rental company, %s, at a cost of only %s. It is much cheaper than their normal price :)",
			pkg.CarRental.Name, money(pkg.CarRental.Price))
		model.Text(d, "Have a fantastic trip!")
	case http.StatusBadRequest:
		model.Text(d, "You have already booked the %s package.", destination)
	default:
		genericError(d, ActionCreateUserOrder, fmt.Errorf("create order returned %d", status))
	}
	return done, nil
}

// CancelUserTrip deletes the order to target_destination. The
// target_destination slot is always cleared.
func (h *Handlers) CancelUserTrip(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	destination := t.SlotString(model.SlotTargetDestination)
	username := t.SlotString(model.SlotUsername)
	done := []model.Event{model.SlotSet(model.SlotTargetDestination, nil)}

	status, err := h.backend.CancelOrder(ctx, username, destination)
	if err != nil {
		genericError(d, ActionCancelUserTrip, err)
		return done, nil
	}

	switch status {
	case http.StatusOK:
		model.Text(d, "Your trip to %s has been canceled.", destination)
	case http.StatusNotFound:
		model.Text(d, "Sorry, I couldn't find an order to %s.", destination)
	default:
		genericError(d, ActionCancelUserTrip, fmt.Errorf("cancel order returned %d", status))
	}
	return done, nil
}

// QueryUserOrders lists the orders of the username slot.
func (h *Handlers) QueryUserOrders(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	return h.listOrders(ctx, d, t.SlotString(model.SlotUsername)), nil
}

func (h *Handlers) listOrders(ctx context.Context, d model.Dispatcher, username string) []model.Event {
	orders, err := h.backend.UserOrders(ctx, username)
	if err != nil {
		genericError(d, ActionQueryUserOrders, err)
		return nil
	}
	if len(orders) == 0 {
		model.Text(d, "You don't have any orders yet.")
		return []model.Event{model.SlotSet(model.SlotOrders, []any{})}
	}

	model.Text(d, "You've ordered the following:")
	summaries := make([]any, 0, len(orders))
	for i, o := range orders {
		model.Text(d, "%d. %s [Country: %s, Destination: %s]", i+1, o.Title, o.Country, o.Destination)
		summaries = append(summaries, fmt.Sprintf("%s %s %s", o.Title, o.Country, o.Destination))
	}
	return []model.Event{model.SlotSet(model.SlotOrders, summaries)}
}
