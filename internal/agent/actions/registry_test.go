package actions

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"

	"github.com/Trippy-actions/server/internal/agent/model"
)

func TestDefaultRegistersEveryAction(t *testing.T) {
	r := newTestRegistry(t, http.NewServeMux())
	want := []string{
		ValidateBookPackageForm, ValidateLoginForm, ValidateRegisterForm,
		ActionLoginUser, ActionRegisterUser, ActionLoginOrRegister,
		ActionCreateUserOrder, ActionCancelUserTrip, ActionQueryUserOrders,
		ActionQueryCountrySpecificPackages, ActionQueryPopularPackages,
		ActionQueryAvailableFlight, ActionChangeFlight, ActionFindNewRoom,
		ActionChangeNewRoom, ActionChangeGuide, ActionOfferCoupon,
		ActionQueryCompanyInfo, ActionQueryCompanyContact,
	}
	slices.Sort(want)
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("names =\n%v\nwant\n%v", got, want)
	}
	for _, a := range r.Actions() {
		if a.Description() == "" {
			t.Errorf("%s has no description", a.Name())
		}
	}
}

func TestRegistryUnknownAction(t *testing.T) {
	r := newTestRegistry(t, http.NewServeMux())
	_, err := r.Run(t.Context(), "action_fly_to_the_moon", tracker(nil))
	if !errors.Is(err, ErrActionNotFound) {
		t.Errorf("err = %v, want ErrActionNotFound", err)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	noop := func(context.Context, model.Dispatcher, *model.Tracker) ([]model.Event, error) { return nil, nil }
	_, err := NewRegistry(NewAction("a", "", noop), NewAction("a", "", noop))
	if err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestRegistryRunNormalisesOutput(t *testing.T) {
	failing := errors.New("boom")
	r, err := NewRegistry(
		NewAction("quiet", "", func(context.Context, model.Dispatcher, *model.Tracker) ([]model.Event, error) { return nil, nil }),
		NewAction("broken", "", func(context.Context, model.Dispatcher, *model.Tracker) ([]model.Event, error) { return nil, failing }),
	)
	if err != nil {
		t.Fatal(err)
	}

	res, err := r.Run(t.Context(), "quiet", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Events == nil || res.Messages == nil {
		t.Errorf("result = %+v, want empty non-nil slices", res)
	}

	if _, err := r.Run(t.Context(), "broken", nil); !errors.Is(err, failing) {
		t.Errorf("err = %v", err)
	}
}
