package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Trippy-actions/server/internal/agent/model"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

var ErrActionNotFound = errors.New("action not found")

// Result is what one invocation produced.
type Result struct {
	Events   []model.Event   `json:"events"`
	Messages []model.Message `json:"responses"`
}

// Registry dispatches invocations by action name.
type Registry struct {
	actions map[string]Action
}

func NewRegistry(actions ...Action) (*Registry, error) {
	r := &Registry{actions: make(map[string]Action, len(actions))}
	for _, a := range actions {
		if _, dup := r.actions[a.Name()]; dup {
			return nil, fmt.Errorf("duplicate action %q", a.Name())
		}
		r.actions[a.Name()] = a
	}
	return r, nil
}

// Default registers every Trippy action against deps.
func Default(deps Deps) *Registry {
	h := NewHandlers(deps)

	all := append(h.formValidations(),
		NewAction(ActionLoginUser, "Log the user in with the username and password slots.", h.LoginUser),
		NewAction(ActionRegisterUser, "Register a new account from the username and password slots.", h.RegisterUser),
		NewAction(ActionLoginOrRegister, "Ask the user to log in or register and remember the interrupted intent.", h.LoginOrRegister),

		NewAction(ActionCreateUserOrder, "Book the package of the destination slot for the user.", h.CreateUserOrder),
		NewAction(ActionCancelUserTrip, "Cancel the user's order to the target destination.", h.CancelUserTrip),
		NewAction(ActionQueryUserOrders, "List the user's orders.", h.QueryUserOrders),
		NewAction(ActionQueryCountrySpecificPackages, "List the next packages for a country.", h.QueryCountryPackages),
		NewAction(ActionQueryPopularPackages, "List the next popular packages.", h.QueryPopularPackages),

		NewAction(ActionQueryAvailableFlight, "Offer the next available flight that was not offered yet.", h.QueryAvailableFlight),
		NewAction(ActionChangeFlight, "Switch the order to the most recently offered flight.", h.ChangeFlight),
		NewAction(ActionFindNewRoom, "Offer the next available hotel room that was not offered yet.", h.FindNewRoom),
		NewAction(ActionChangeNewRoom, "Switch the order to the most recently offered room.", h.ChangeNewRoom),
		NewAction(ActionChangeGuide, "Assign a new tour guide to the order.", h.ChangeGuide),
		NewAction(ActionOfferCoupon, "Give the user a restaurant coupon as compensation.", h.OfferCoupon),

		NewAction(ActionQueryCompanyInfo, "Tell the user about the company.", h.QueryCompanyInfo),
		NewAction(ActionQueryCompanyContact, "Give the user the company contact details.", h.QueryCompanyContact),
	)

	r, err := NewRegistry(all...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Names returns the registered action names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for n := range r.actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Actions returns the registered actions ordered by name.
func (r *Registry) Actions() []Action {
	out := make([]Action, 0, len(r.actions))
	for _, n := range r.Names() {
		out = append(out, r.actions[n])
	}
	return out
}

// Run invokes name against a read-only tracker.
func (r *Registry) Run(ctx context.Context, name string, t *model.Tracker) (*Result, error) {
	a, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, name)
	}
	if t == nil {
		t = &model.Tracker{}
	}

	start := time.Now()
	d := model.NewCollectingDispatcher()
	events, err := a.Run(ctx, d, t)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	if events == nil {
		events = []model.Event{}
	}

	logger := logx.Action(name)
	logger.Debug().
		Str("sender_id", t.SenderID).
		Int("events", len(events)).
		Int("messages", len(d.Messages)).
		Dur("took", time.Since(start)).
		Msg("action finished")

	return &Result{Events: events, Messages: d.Messages}, nil
}
