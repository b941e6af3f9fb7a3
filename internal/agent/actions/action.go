// Package actions implements the Trippy business-logic handlers the
// dialogue engine invokes by name: form validators, authentication,
// booking, package listings, remediation offers and informational texts.
//
// Handlers never mutate the tracker. Every state change is returned as a
// slot event, and every user-facing text goes through the dispatcher.
package actions

import (
	"context"
	"math/rand/v2"

	"github.com/Trippy-actions/server/internal/agent/backend"
	"github.com/Trippy-actions/server/internal/agent/model"
)

// Action names as the dialogue domain refers to them.
const (
	ValidateBookPackageForm = "validate_book_package_form"
	ValidateLoginForm       = "validate_login_form"
	ValidateRegisterForm    = "validate_register_form"

	ActionLoginUser       = "action_login_user"
	ActionRegisterUser    = "action_register_user"
	ActionLoginOrRegister = "action_login_or_register"

	ActionCreateUserOrder              = "action_create_user_order"
	ActionCancelUserTrip               = "action_cancel_user_trip"
	ActionQueryUserOrders              = "action_query_user_orders"
	ActionQueryCountrySpecificPackages = "action_query_country_specific_packages"
	ActionQueryPopularPackages         = "action_query_popular_packages"

	ActionQueryAvailableFlight = "action_get_next_available_flight"
	ActionChangeFlight         = "action_change_flight"
	ActionFindNewRoom          = "action_find_new_room"
	ActionChangeNewRoom        = "action_change_new_room"
	ActionChangeGuide          = "action_change_guide"
	ActionOfferCoupon          = "action_offer_coupon"

	ActionQueryCompanyInfo    = "action_query_company_info"
	ActionQueryCompanyContact = "action_query_company_contact"
)

// Action is one named handler.
type Action interface {
	Name() string
	Description() string
	Run(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error)
}

// RunFunc is the body of an Action.
type RunFunc func(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error)

type handler struct {
	name string
	desc string
	run  RunFunc
}

// NewAction wraps fn as an Action.
func NewAction(name, desc string, fn RunFunc) Action {
	return &handler{name: name, desc: desc, run: fn}
}

func (h *handler) Name() string        { return h.name }
func (h *handler) Description() string { return h.desc }

func (h *handler) Run(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	return h.run(ctx, d, t)
}

// Backend is the travel backend surface the handlers use.
type Backend interface {
	Login(ctx context.Context, user model.User) (int, error)
	Register(ctx context.Context, user model.User) (int, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	UserOrders(ctx context.Context, username string) ([]model.OrderSummary, error)

	PackagesByDestination(ctx context.Context, destination string) ([]model.Package, error)
	CountryPackages(ctx context.Context, country string, exclude []int, limit int) ([]model.Package, error)
	PopularPackages(ctx context.Context, exclude []int, limit int) ([]model.Package, error)

	CreateOrder(ctx context.Context, username string, packageID int) (int, error)
	CancelOrder(ctx context.Context, username, destination string) (int, error)

	NextFlight(ctx context.Context, username, destination string, exclude []int) (*model.Flight, error)
	ChangeFlight(ctx context.Context, username, destination string, flightID int) (int, error)
	NextRoom(ctx context.Context, username, destination string, exclude []int) (*model.Room, error)
	ChangeRoom(ctx context.Context, username, destination string, hotelID int) (int, error)
	ChangeGuide(ctx context.Context, username, destination string) (int, *model.Guide, error)
	Restaurant(ctx context.Context, destination string) (*model.Restaurant, error)

	backend.InfoSource
}

var _ Backend = (*backend.Client)(nil)

// Deps are the collaborators injected into every handler.
type Deps struct {
	Backend Backend
	// Info serves the company texts; defaults to Backend. Set it to put a cache in front.
	Info    backend.InfoSource
	Catalog model.CatalogConfig
	// IntN returns a random integer in [0, n); defaults to math/rand/v2.
	IntN func(n int) int
}

// Handlers holds the injected dependencies shared by all actions.
type Handlers struct {
	backend Backend
	info    backend.InfoSource
	catalog model.CatalogConfig
	intN    func(n int) int
}

// NewHandlers applies defaults to deps.
func NewHandlers(deps Deps) *Handlers {
	h := &Handlers{
		backend: deps.Backend,
		info:    deps.Info,
		catalog: deps.Catalog.Normalize(),
		intN:    deps.IntN,
	}
	if h.info == nil {
		h.info = deps.Backend
	}
	if h.intN == nil {
		h.intN = rand.IntN
	}
	return h
}
