package action

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/electa-dev/electa/pkg/consent"
	"github.com/electa-dev/electa/pkg/views"
)

// Sentinel errors returned by Decode.
var (
	// ErrUnknownAction is returned for a marker no kind is registered for.
	// The router ignores such actions.
	ErrUnknownAction = errors.New("action: unknown action")

	// ErrMissingField is returned when a required data attribute is absent
	// or empty.
	ErrMissingField = errors.New("action: missing field")

	// ErrInvalidField is returned when a data attribute cannot be parsed.
	ErrInvalidField = errors.New("action: invalid field")

	// ErrUnknownItem is returned by the router for a cart item that is not
	// in the loaded catalogue.
	ErrUnknownItem = errors.New("action: unknown item")
)

// ValueField carries the current value of the form control that fired a
// change event, for example the selected party.
const ValueField = "value"

// FieldError reports the data attribute that made an action undecodable.
type FieldError struct {
	Kind  Kind
	Field string
	Err   error // ErrMissingField, ErrInvalidField or ErrUnknownItem
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s data-%s", e.Err, e.Kind, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Action is a decoded visitor action. Only the fields of its Kind are set.
type Action struct {
	Kind Kind

	// Vote fields
	Name       string
	Party      string
	Electorate string

	// Cart fields. Price is the price the trigger displayed; the router
	// charges the catalogue price.
	ItemID string
	Price  float64

	// Consent fields. Pending holds the modal's unsaved toggle states.
	Preference consent.Category
	Pending    consent.Preferences
}

// Decode maps a data-action marker and the trigger's data attributes
// (without the data- prefix) into a typed Action.
func Decode(marker string, data map[string]string) (Action, error) {
	kind, ok := ParseKind(marker)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, marker)
	}

	a := Action{Kind: kind}
	d := fields{kind: kind, data: data}

	switch kind {
	case SaveVote:
		a.Name = d.required(views.AttrName)
		a.Party = d.optional(views.AttrParty)
		a.Electorate = d.required(views.AttrElectorate)
	case RemoveVote:
		a.Name = d.required(views.AttrName)
		a.Electorate = d.required(views.AttrElectorate)
	case FilterParty:
		a.Electorate = d.required(views.AttrElectorate)
		a.Party = d.optional(ValueField)
	case AddToCart:
		a.ItemID = d.required(views.AttrItemID)
		a.Price = d.price(views.AttrItemPrice)
	case RemoveCartItem:
		a.ItemID = d.required(views.AttrItemID)
	case ToggleCookie:
		a.Preference = consent.Category(d.required(views.AttrPreference))
		a.Pending = d.pending()
	case SaveCookies:
		a.Pending = d.pending()
	}

	if d.err != nil {
		return Action{}, d.err
	}
	return a, nil
}

// fields reads data attributes, latching the first error.
type fields struct {
	kind Kind
	data map[string]string
	err  error
}

func (f *fields) fail(field string, err error) {
	if f.err == nil {
		f.err = &FieldError{Kind: f.kind, Field: field, Err: err}
	}
}

func (f *fields) optional(name string) string {
	return strings.TrimSpace(f.data[name])
}

func (f *fields) required(name string) string {
	v := f.optional(name)
	if v == "" {
		f.fail(name, ErrMissingField)
	}
	return v
}

func (f *fields) price(name string) float64 {
	v := f.required(name)
	if v == "" {
		return 0
	}
	p, err := strconv.ParseFloat(v, 64)
	if err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		f.fail(name, ErrInvalidField)
		return 0
	}
	return p
}

// pending reads the toggle states the modal carries. Absent values are
// off, matching a modal opened before any decision.
func (f *fields) pending() consent.Preferences {
	return consent.Preferences{
		Necessary:   true,
		Analytics:   f.flag(views.AttrAnalytics),
		Advertising: f.flag(views.AttrAdvertising),
	}
}

func (f *fields) flag(name string) bool {
	v := f.optional(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		f.fail(name, ErrInvalidField)
	}
	return b
}
