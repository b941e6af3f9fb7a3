package actions

import (
	"context"

	"github.com/Trippy-actions/server/internal/agent/backend"
	"github.com/Trippy-actions/server/internal/agent/model"
)

func (h *Handlers) QueryCompanyInfo(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	h.relayInfo(ctx, d, ActionQueryCompanyInfo, backend.InfoCompany)
	return nil, nil
}

func (h *Handlers) QueryCompanyContact(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	h.relayInfo(ctx, d, ActionQueryCompanyContact, backend.InfoContact)
	return nil, nil
}

func (h *Handlers) relayInfo(ctx context.Context, d model.Dispatcher, action, topic string) {
	text, err := h.info.Info(ctx, topic)
	if err != nil {
		genericError(d, action, err)
		return
	}
	d.Utter(model.Message{Text: text})
}
