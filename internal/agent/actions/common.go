package actions

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Trippy-actions/server/internal/agent/model"
	errx "github.com/Trippy-actions/server/internal/core/error"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

const genericErrorText = "Sorry, something went wrong on our side. Please try again later."

// genericError emits the fallback message for unclassified backend failures.
func genericError(d model.Dispatcher, action string, err error) {
	if err != nil {
		logger := logx.Action(action)
		logger.Error().Err(err).
			Int("status", errx.StatusOf(err)).
			Str("reason", errx.MessageOf(err)).
			Msg("backend call failed")
	}
	d.Utter(model.Message{Text: genericErrorText})
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// lookup returns the allow-list spelling of candidate, compared in title case.
func lookup(allowed []string, candidate string) (string, bool) {
	want := titleCase(candidate)
	for _, a := range allowed {
		if titleCase(a) == want {
			return a, true
		}
	}
	return "", false
}

// money renders a price without a trailing ".0".
func money(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', -1, 64)
}

// idsValue converts ids into a slot value.
func idsValue(ids []int) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
