package action

import "github.com/electa-dev/electa/pkg/views"

// Kind identifies a visitor action.
type Kind uint8

// Action kinds.
const (
	KindUnknown Kind = iota

	// Votes
	SaveVote
	RemoveVote
	FilterParty

	// Cart
	AddToCart
	RemoveCartItem

	// Cookie consent
	AcceptCookies
	RejectCookies
	ToggleCookie
	SaveCookies
	RevokeCookies
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case SaveVote:
		return "SaveVote"
	case RemoveVote:
		return "RemoveVote"
	case FilterParty:
		return "FilterParty"
	case AddToCart:
		return "AddToCart"
	case RemoveCartItem:
		return "RemoveCartItem"
	case AcceptCookies:
		return "AcceptCookies"
	case RejectCookies:
		return "RejectCookies"
	case ToggleCookie:
		return "ToggleCookie"
	case SaveCookies:
		return "SaveCookies"
	case RevokeCookies:
		return "RevokeCookies"
	default:
		return "Unknown"
	}
}

// Marker returns the data-action marker of the kind, or "" for
// KindUnknown.
func (k Kind) Marker() string {
	for marker, kind := range markers {
		if kind == k {
			return marker
		}
	}
	return ""
}

// IsConsent reports whether the kind belongs to the cookie preferences.
func (k Kind) IsConsent() bool {
	return k >= AcceptCookies && k <= RevokeCookies
}

var markers = map[string]Kind{
	views.MarkerSaveVote:       SaveVote,
	views.MarkerRemoveVote:     RemoveVote,
	views.MarkerFilterParty:    FilterParty,
	views.MarkerAddToCart:      AddToCart,
	views.MarkerRemoveCartItem: RemoveCartItem,
	views.MarkerAcceptCookies:  AcceptCookies,
	views.MarkerRejectCookies:  RejectCookies,
	views.MarkerToggleCookie:   ToggleCookie,
	views.MarkerSaveCookies:    SaveCookies,
	views.MarkerRevokeCookies:  RevokeCookies,
}

// ParseKind returns the kind of a data-action marker.
func ParseKind(marker string) (Kind, bool) {
	k, ok := markers[marker]
	return k, ok
}
