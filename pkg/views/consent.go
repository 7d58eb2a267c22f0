package views

import (
	"github.com/electa-dev/electa/pkg/consent"
	. "github.com/electa-dev/electa/pkg/vdom"
)

// Cookie consent texts.
const (
	CookieBannerText = "We use cookies to enhance your experience and show relevant ads. By continuing, you agree to our "
	AcceptedAllText  = "All cookies accepted"
	RejectedAllText  = "Only necessary cookies enabled"
	SavedPrefsText   = "Cookie preferences saved"
	RevokedText      = "Cookie consent withdrawn"
)

// CookieBanner renders the consent banner, shown while the visitor has not
// decided.
func CookieBanner(state consent.State) *VNode {
	show := ""
	if state == consent.NoDecision {
		show = "show"
	}
	return Div(ID(TargetCookieBanner), Class("cookie-consent-banner", show), Role("region"), AriaLabel("Cookie consent"),
		Div(Class("cookie-consent-content"),
			Div(Class("cookie-consent-text"),
				CookieBannerText,
				A(Href("/privacy"), "Privacy Policy"),
				".",
			),
			Div(Class("cookie-consent-actions"),
				Button(Class("cookie-btn", "cookie-btn-manage"), Type("button"),
					Data("show", TargetCookieModal), Data("hide", TargetCookieBanner),
					"Manage Preferences"),
				Button(Class("cookie-btn", "cookie-btn-accept"), Type("button"),
					Action(MarkerAcceptCookies),
					"Accept All"),
			),
		),
	)
}

// CookieModal renders the preferences modal. pending holds the toggle
// states shown, which are not persisted until saved; every trigger in the
// modal carries them so the server needs no session state.
func CookieModal(pending consent.Preferences, state consent.State, open bool) *VNode {
	show := ""
	if open {
		show = "show"
	}
	return Div(ID(TargetCookieModal), Class("cookie-modal-overlay", show), Role("dialog"), AriaLabel("Cookie Preferences"),
		Div(Class("cookie-modal"),
			Div(Class("cookie-modal-header"),
				H2("Cookie Preferences"),
				Button(Class("cookie-modal-close"), Type("button"), AriaLabel("Close"),
					Data("hide", TargetCookieModal), reshowBanner(state),
					"×"),
			),
			Div(Class("cookie-modal-body"),
				preferenceItem("Necessary Cookies",
					"These cookies are essential for the website to function properly. They enable basic features like page navigation and access to secure areas.",
					Div(Class("cookie-toggle", "active", "disabled"), AriaPressed(true), Div(Class("cookie-toggle-slider"))),
				),
				preferenceItem("Analytics Cookies",
					"These cookies help us understand how visitors interact with our website by collecting and reporting information anonymously.",
					cookieToggle("analyticsToggle", consent.Analytics, pending.Analytics, pending),
				),
				preferenceItem("Advertising Cookies",
					"These cookies are used to show you ads that are relevant to your interests. They also help measure the effectiveness of advertising campaigns.",
					cookieToggle("advertisingToggle", consent.Advertising, pending.Advertising, pending),
				),
			),
			Div(Class("cookie-modal-footer"),
				If(state == consent.Decided,
					Button(Class("cookie-btn", "cookie-btn-revoke"), Type("button"), Action(MarkerRevokeCookies), "Withdraw Consent"),
				),
				Button(Class("cookie-btn", "cookie-btn-manage"), Type("button"), Action(MarkerRejectCookies), "Reject All"),
				Button(Class("cookie-btn", "cookie-btn-accept"), Type("button"), Action(MarkerSaveCookies),
					pendingAttrs(pending),
					"Save Preferences"),
			),
		),
	)
}

// reshowBanner brings the banner back when the modal is closed without a
// decision.
func reshowBanner(state consent.State) Attr {
	if state != consent.NoDecision {
		return Attr{}
	}
	return Data("show", TargetCookieBanner)
}

func preferenceItem(title, description string, toggle *VNode) *VNode {
	return Div(Class("cookie-preference-item"),
		Div(Class("cookie-preference-header"),
			H3(title),
			toggle,
		),
		P(Class("cookie-preference-description"), description),
	)
}

func cookieToggle(id string, c consent.Category, on bool, pending consent.Preferences) *VNode {
	active := ""
	if on {
		active = "active"
	}
	return Div(ID(id), Class("cookie-toggle", active), Role("switch"), AriaPressed(on),
		Action(MarkerToggleCookie),
		Data(AttrPreference, string(c)),
		pendingAttrs(pending),
		Div(Class("cookie-toggle-slider")),
	)
}

func pendingAttrs(p consent.Preferences) []Attr {
	return []Attr{
		Data(AttrAnalytics, boolAttr(p.Analytics)),
		Data(AttrAdvertising, boolAttr(p.Advertising)),
	}
}

// ConsentOverlays renders the banner, the modal and the toast region that
// every page carries.
func ConsentOverlays(prefs consent.Preferences, state consent.State) *VNode {
	return Fragment(
		CookieBanner(state),
		CookieModal(prefs, state, false),
		Div(ID(TargetToasts), Class("toast-region"), AriaLive("polite")),
	)
}
