package actions

import (
	"context"
	"net/http"

	"github.com/Trippy-actions/server/internal/agent/model"
)

// LoginUser authenticates the username/password slots.
func (h *Handlers) LoginUser(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	user := model.User{
		Username: t.SlotString(model.SlotUsername),
		Password: t.SlotString(model.SlotPassword),
	}

	status, err := h.backend.Login(ctx, user)
	if err != nil {
		genericError(d, ActionLoginUser, err)
		return nil, nil
	}
	if status != http.StatusOK {
		model.Text(d, "Sorry, it seems that the username or the password is not valid.")
		d.Utter(model.Message{Response: "login_form"})
		return []model.Event{
			model.SlotSet(model.SlotUsername, nil),
			model.SlotSet(model.SlotPassword, nil),
		}, nil
	}

	events := []model.Event{model.SlotSet(model.SlotIsAuthenticated, true)}
	return append(events, h.resume(ctx, d, t, user.Username)...), nil
}

// RegisterUser creates an account from the username/password slots.
func (h *Handlers) RegisterUser(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	user := model.User{
		Username: t.SlotString(model.SlotUsername),
		Password: t.SlotString(model.SlotPassword),
	}

	status, err := h.backend.Register(ctx, user)
	if err != nil {
		genericError(d, ActionRegisterUser, err)
		return nil, nil
	}
	if status != http.StatusCreated {
		model.Text(d, "The username '%s' is taken, please choose another one.", user.Username)
		return []model.Event{
			model.SlotSet(model.SlotUsername, nil),
			model.SlotSet(model.SlotPassword, nil),
		}, nil
	}

	events := []model.Event{
		model.SlotSet(model.SlotIsAuthenticated, true),
		model.SlotSet(model.SlotUsername, user.Username),
		model.SlotSet(model.SlotPassword, user.Password),
	}
	return append(events, h.resume(ctx, d, t, user.Username)...), nil
}

// LoginOrRegister offers both authentication paths and remembers the
// intent that was interrupted so it can be resumed afterwards.
func (h *Handlers) LoginOrRegister(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	d.Utter(model.Message{
		Text: "You need to log in first. Do you already have an account?",
		Buttons: []model.Button{
			{Title: "Login", Payload: "/login"},
			{Title: "Register", Payload: "/register"},
		},
	})

	var intent any
	if name := t.LatestIntent(); name != "" {
		intent = name
	}
	return []model.Event{model.SlotSet(model.SlotLastIntent, intent)}, nil
}

// resume continues the flow that was interrupted by authentication.
func (h *Handlers) resume(ctx context.Context, d model.Dispatcher, t *model.Tracker, username string) []model.Event {
	switch t.SlotString(model.SlotLastIntent) {
	case model.IntentBookPackage:
		destination := t.SlotString(model.SlotDestination)
		if destination == "" {
			model.Text(d, "Hi %s, which destination would you like to book?", username)
		} else {
			d.Utter(model.Message{
				Text: "Hi " + username + ", do you still want to book the " + destination + " package?",
				Buttons: []model.Button{
					{Title: "Yes", Payload: "/affirm"},
					{Title: "No", Payload: "/deny"},
				},
			})
		}
		return []model.Event{model.SlotSet(model.SlotLastIntent, nil)}

	case model.IntentQueryOrders:
		model.Text(d, "Hi %s, let me look up your orders.", username)
		events := h.listOrders(ctx, d, username)
		return append(events, model.SlotSet(model.SlotLastIntent, nil))

	default:
		model.Text(d, "Hi %s, how can I help you?", username)
		return nil
	}
}
