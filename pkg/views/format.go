package views

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	. "github.com/electa-dev/electa/pkg/vdom"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount with two decimals and digit grouping:
// 15 → "$15.00", 1234.5 → "$1,234.50".
func FormatPrice(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}

// priceLabel renders a catalogue price the way it appears in the data:
// 15 → "$15", 12.5 → "$12.5".
func priceLabel(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}

// ElectoratePath returns the page of an electorate.
func ElectoratePath(electorate string) string {
	return "/electorates/" + url.PathEscape(strings.ToLower(electorate))
}

// ProfilePath returns the profile page of a candidate id.
func ProfilePath(candidateID string) string {
	return "/profile?candidate=" + url.QueryEscape(candidateID)
}

// ArticlePath returns the page of an article id.
func ArticlePath(id string) string {
	return "/article?id=" + url.QueryEscape(id)
}

// linkSchemes are the schemes a data-file link may use.
var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// SafeLinkURL returns raw, trimmed, when it parses as an absolute http,
// https, mailto or tel URL. Anything else yields "".
func SafeLinkURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !linkSchemes[u.Scheme] {
		return ""
	}
	return raw
}

// SafeImageURL returns raw, trimmed, when it is a relative reference or an
// http or https URL. Anything else yields "".
func SafeImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "", "http", "https":
		return raw
	}
	return ""
}

// image renders an img for a data-file source, or nil when src is unsafe.
func image(src string, attrs ...any) *VNode {
	safe := SafeImageURL(src)
	if safe == "" {
		return nil
	}
	return Img(append([]any{Src(safe)}, attrs...)...)
}

func boolAttr(b bool) string {
	return strconv.FormatBool(b)
}
