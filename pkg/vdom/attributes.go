package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an arbitrary attribute.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining non-empty classes with spaces.
func Class(classes ...string) Attr {
	kept := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return attr("class", strings.Join(kept, " "))
}

// Data creates a data-* attribute.
// Example: Data("item-id", "tote-bag") → data-item-id="tote-bag"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Action marks an element as an action trigger.
func Action(name string) Attr { return attr(ActionAttr, name) }

// Links and media

func Href(url string) Attr    { return attr("href", url) }
func Src(url string) Attr     { return attr("src", url) }
func Alt(text string) Attr    { return attr("alt", text) }
func Target(t string) Attr    { return attr("target", t) }
func Rel(rel string) Attr     { return attr("rel", rel) }
func Loading(l string) Attr   { return attr("loading", l) }
func TitleAttr(t string) Attr { return attr("title", t) }

// ExternalLink opens in a new tab without leaking the opener.
func ExternalLink() []Attr {
	return []Attr{Target("_blank"), Rel("noopener noreferrer")}
}

// Forms

func Type(t string) Attr        { return attr("type", t) }
func Name(n string) Attr        { return attr("name", n) }
func Value(v string) Attr       { return attr("value", v) }
func For(id string) Attr        { return attr("for", id) }
func Method(m string) Attr      { return attr("method", m) }
func FormAction(u string) Attr  { return attr("action", u) }
func Placeholder(p string) Attr { return attr("placeholder", p) }
func Rows(n int) Attr           { return attr("rows", n) }
func Required() Attr            { return attr("required", true) }
func Disabled() Attr            { return attr("disabled", true) }

// Selected sets the selected attribute when b is true.
func Selected(b bool) Attr {
	if !b {
		return Attr{}
	}
	return attr("selected", true)
}

// Accessibility

func Role(role string) Attr       { return attr("role", role) }
func AriaLabel(label string) Attr { return attr("aria-label", label) }
func AriaLive(mode string) Attr   { return attr("aria-live", mode) }

// AriaPressed sets aria-pressed to "true" or "false".
func AriaPressed(pressed bool) Attr {
	if pressed {
		return attr("aria-pressed", "true")
	}
	return attr("aria-pressed", "false")
}

// Hidden sets the hidden attribute when b is true.
func Hidden(b bool) Attr {
	if !b {
		return Attr{}
	}
	return attr("hidden", true)
}
