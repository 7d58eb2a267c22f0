package views

import (
	"github.com/electa-dev/electa/pkg/contribute"
	. "github.com/electa-dev/electa/pkg/vdom"
)

type navLink struct {
	href, label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/electorates", "Electorates"},
	{"/votes", "My Votes"},
	{"/blog", "Blog"},
	{"/shop", "Shop"},
	{"/contribute", "Contribute"},
}

// SiteHeader renders the navigation bar with the cart badge.
func SiteHeader(active string, cartCount int) *VNode {
	links := Range(navLinks, func(l navLink, _ int) *VNode {
		current := ""
		if l.href == active {
			current = "active"
		}
		return A(Href(l.href), Class("nav-link", current), l.label)
	})

	return Header(Class("site-header"),
		A(Href("/"), Class("brand"), "Electa"),
		Button(Class("menu-toggle"), Type("button"), Data("menu-toggle", ""),
			AttrOf("aria-controls", "mobileMenu"), AttrOf("aria-expanded", "false"), AriaLabel("Menu"),
			"☰"),
		Nav(ID("mobileMenu"), Class("site-nav"),
			links,
			A(Href("/cart"), Class("nav-link", "cart-link"), "Cart ", CartBadge(cartCount)),
		),
	)
}

// SiteFooter renders the footer with the cookie settings link.
func SiteFooter() *VNode {
	return Footer(Class("site-footer"),
		P("Electa is an independent, non-partisan voter information site."),
		P(
			A(Href("/privacy"), "Privacy Policy"),
			" · ",
			A(Href("#"), Class("cookie-settings-link"), Data("show", TargetCookieModal), "Cookie Settings"),
		),
	)
}

// HomePage renders the landing page.
func HomePage() *VNode {
	return Section(Class("hero"),
		H1("Know who is on your ballot"),
		P(Class("section-intro"), "Browse the candidates standing in your electorate, save your picks and take them to the polling booth."),
		A(Href("/electorates"), ID("findElectorateBtn"), Class("primary-btn"), "Find your electorate"),
		Div(Class("countdown"),
			P(ID("countdownMeta"), "Election day TBC. Come back later for the countdown."),
		),
	)
}

// NotFoundPage is rendered for unknown paths.
func NotFoundPage() *VNode {
	return Section(Class("page-section"),
		H1("Page Not Found"),
		A(Href("/"), Class("primary-btn"), "Back to Home"),
	)
}

// ContributeForm renders the contribution form. sub refills the fields
// after a failed submission and errMsg explains the failure.
func ContributeForm(sub contribute.Submission, errMsg string) *VNode {
	options := []*VNode{Option(Value(""), Selected(sub.Type == ""), "Select a contribution type")}
	for _, t := range contribute.Types {
		options = append(options, Option(Value(t), Selected(sub.Type == t), t))
	}

	return Section(Class("page-section"),
		H1("Contribute"),
		P(Class("section-intro"), "Spotted something incorrect or missing? Send it to us and we will check it."),
		Form(ID("contributeForm"), Method("post"), FormAction("/contribute"), Class("contribute-form"),
			If(errMsg != "", P(Class("form-error"), Role("alert"), errMsg)),
			Label(For("contributeType"), "Contribution type"),
			Select(ID("contributeType"), Name("type"), options),
			Label(For("contributeMessage"), "Message"),
			Textarea(ID("contributeMessage"), Name("message"), Rows(6), Placeholder("Tell us what to add or correct"), sub.Message),
			Button(ID("sendBtn"), Type("submit"), Class("primary-btn"), "Send"),
		),
	)
}
