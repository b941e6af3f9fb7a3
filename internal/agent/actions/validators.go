package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Trippy-actions/server/internal/agent/model"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// SlotValidator checks one candidate slot value and returns the value to
// store. Returning nil rejects the value so the form asks again.
type SlotValidator func(ctx context.Context, d model.Dispatcher, value any) any

// FormValidation validates the freshly extracted slots of a form.
type FormValidation struct {
	name       string
	validators map[string]SlotValidator
}

// NewFormValidation builds the validation action name for the given slots.
func NewFormValidation(name string, validators map[string]SlotValidator) *FormValidation {
	return &FormValidation{name: name, validators: validators}
}

func (f *FormValidation) Name() string { return f.name }

func (f *FormValidation) Description() string {
	slots := make([]string, 0, len(f.validators))
	for s := range f.validators {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	return fmt.Sprintf("Validate the %s form slots: %s.", strings.TrimSuffix(strings.TrimPrefix(f.name, "validate_"), "_form"), strings.Join(slots, ", "))
}

// Run validates every slot the latest message filled. Slots without a
// validator are passed through unchanged.
func (f *FormValidation) Run(ctx context.Context, d model.Dispatcher, t *model.Tracker) ([]model.Event, error) {
	candidates := t.SlotsToValidate()
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	events := make([]model.Event, 0, len(names))
	for _, name := range names {
		value := candidates[name]
		if v, ok := f.validators[name]; ok {
			value = v(ctx, d, value)
		}
		events = append(events, model.SlotSet(name, value))
	}
	return events, nil
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(v), true
	default:
		return strings.TrimSpace(fmt.Sprint(v)), true
	}
}

// ValidateDestination accepts destinations on the allow-list and stores
// their canonical spelling.
func (h *Handlers) ValidateDestination(ctx context.Context, d model.Dispatcher, value any) any {
	destination, _ := asString(value)
	if canonical, ok := lookup(h.catalog.Destinations, destination); ok {
		model.Text(d, "Ok, you want the %s package.", canonical)
		return canonical
	}

	buttons := make([]model.Button, 0, len(h.catalog.Destinations))
	for _, allowed := range h.catalog.Destinations {
		payload, _ := json.Marshal(map[string]string{model.SlotDestination: allowed})
		buttons = append(buttons, model.Button{
			Title:   allowed,
			Payload: "/inform" + string(payload),
		})
	}
	d.Utter(model.Message{
		Text: fmt.Sprintf("Sorry, I don't recognize %s, we only have packages in %s.",
			destination, strings.Join(h.catalog.Destinations, ", ")),
		Buttons: buttons,
	})
	return nil
}

// ValidateUsername accepts names that start with a letter, contain only
// letters and digits and are still free on the backend.
func (h *Handlers) ValidateUsername(ctx context.Context, d model.Dispatcher, value any) any {
	username, _ := asString(value)
	if !usernamePattern.MatchString(username) {
		model.Text(d, "A username must start with a letter and contain only letters and digits. Please choose another one.")
		return nil
	}

	available, err := h.backend.UsernameAvailable(ctx, username)
	if err != nil {
		genericError(d, ValidateRegisterForm, err)
		return nil
	}
	if !available {
		model.Text(d, "The username '%s' is taken, please choose another one.", username)
		return nil
	}
	return username
}

// ValidatePassword rejects empty passwords and passwords containing
// whitespace or a hyphen.
func (h *Handlers) ValidatePassword(ctx context.Context, d model.Dispatcher, value any) any {
	var raw string
	switch v := value.(type) {
	case nil:
	case string:
		raw = v
	default:
		raw = fmt.Sprint(v)
	}
	if raw == "" || strings.ContainsRune(raw, '-') || strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		model.Text(d, "A password must not be empty and must not contain spaces or '-'. Please enter another one.")
		return nil
	}
	return raw
}

func (h *Handlers) formValidations() []Action {
	return []Action{
		NewFormValidation(ValidateBookPackageForm, map[string]SlotValidator{
			model.SlotDestination: h.ValidateDestination,
		}),
		NewFormValidation(ValidateRegisterForm, map[string]SlotValidator{
			model.SlotUsername: h.ValidateUsername,
			model.SlotPassword: h.ValidatePassword,
		}),
		NewFormValidation(ValidateLoginForm, map[string]SlotValidator{
			model.SlotPassword: h.ValidatePassword,
		}),
	}
}
