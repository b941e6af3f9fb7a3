package actions

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Trippy-actions/server/internal/agent/backend"
	"github.com/Trippy-actions/server/internal/agent/model"
)

type staticInfo map[string]string

func (s staticInfo) Info(_ context.Context, topic string) (string, error) {
	text, ok := s[topic]
	if !ok {
		return "", errors.New("no such topic")
	}
	return text, nil
}

func TestQueryCompanyInfoFromBackend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /info/company", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"info": "Trippy plans trips."})
	})
	r := newTestRegistry(t, mux)

	res := runAction(t, r, ActionQueryCompanyInfo, tracker(nil))
	if !containsText(res, "Trippy plans trips.") {
		t.Errorf("texts = %q", texts(res))
	}

	res = runAction(t, r, ActionQueryCompanyContact, tracker(nil))
	if !containsText(res, genericErrorText) {
		t.Errorf("texts = %q", texts(res))
	}
}

func TestQueryCompanyContactUsesInfoSource(t *testing.T) {
	c, err := backend.NewClient(model.BackendConfig{URL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatal(err)
	}
	r := Default(Deps{
		Backend: c,
		Info:    staticInfo{backend.InfoContact: "support@trippy.io"},
		Catalog: model.DefaultCatalog(),
	})

	res := runAction(t, r, ActionQueryCompanyContact, tracker(nil))
	if !containsText(res, "support@trippy.io") {
		t.Errorf("texts = %q", texts(res))
	}
}
