package actions

import (
	"context"
	"strings"

	"github.com/Trippy-actions/server/internal/agent/model"
)

// QueryCountryPackages lists the next batch of packages for the country
// named in the latest message, or in the country slot.
func (h *Handlers) QueryCountryPackages(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	candidate, ok := t.FirstEntity(model.EntityCountry)
	if !ok {
		candidate = t.SlotString(model.SlotCountry)
	}

	country, ok := lookup(h.catalog.Countries, candidate)
	if !ok {
		model.Text(d, "Sorry, we only have packages to %s.", strings.Join(h.catalog.Countries, ", "))
		return []model.Event{model.SlotSet(model.SlotCountry, nil)}, nil
	}

	shown, _ := t.SlotInts(model.SlotShowedPackageIDs)
	packages, err := h.backend.CountryPackages(ctx, country, shown, h.catalog.BatchSize)
	if err != nil {
		genericError(d, ActionQueryCountrySpecificPackages, err)
		return []model.Event{model.SlotSet(model.SlotCountry, country)}, nil
	}

	events := []model.Event{model.SlotSet(model.SlotCountry, country)}
	if len(packages) > 0 {
		model.Text(d, "Here are some packages to %s:", country)
	}
	return append(events, showPackages(d, shown, packages)...), nil
}

// QueryPopularPackages lists the next batch of popular packages.
func (h *Handlers) QueryPopularPackages(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	shown, _ := t.SlotInts(model.SlotShowedPackageIDs)
	packages, err := h.backend.PopularPackages(ctx, shown, h.catalog.BatchSize)
	if err != nil {
		genericError(d, ActionQueryPopularPackages, err)
		return nil, nil
	}

	if len(packages) > 0 {
		model.Text(d, "Here are some popular packages:")
	}
	return showPackages(d, shown, packages), nil
}

// showPackages renders a batch and records the ids as shown. An empty
// batch only raises no_more_packages.
func showPackages(d model.Dispatcher, shown []int, packages []model.Package) []model.Event {
	if len(packages) == 0 {
		return []model.Event{model.SlotSet(model.SlotNoMorePackages, true)}
	}

	ids := append([]int{}, shown...)
	for _, p := range packages {
		d.Utter(model.Message{Image: p.PicURL})
		model.Text(d, "%s\n%s\nDuration: %s\nPrice: %s", p.Title, p.Description, p.Duration, money(p.Price))
		ids = append(ids, p.ID)
	}
	return []model.Event{
		model.SlotSet(model.SlotShowedPackageIDs, idsValue(ids)),
		model.SlotSet(model.SlotNoMorePackages, false),
	}
}
