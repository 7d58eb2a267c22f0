package render

import (
	"io"

	"github.com/electa-dev/electa/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Description fills the description meta tag when set.
	Description string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts are emitted in the head, after the stylesheets.
	Scripts []ScriptTag

	// Header, Body and Footer make up the visible page.
	Header *vdom.VNode
	Body   *vdom.VNode
	Footer *vdom.VNode

	// Overlays render after the footer: cookie banner, preferences
	// modal, toast region.
	Overlays *vdom.VNode

	// ClientScript is the path to the thin client JavaScript.
	// Defaults to "/client.js" if not specified.
	ClientScript string

	// ActionEndpoint and SocketEndpoint are handed to the client via
	// data attributes on its script tag. An empty SocketEndpoint keeps
	// the client on plain HTTP.
	ActionEndpoint string
	SocketEndpoint string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src         string
	Async       bool
	Defer       bool
	CrossOrigin string
	Inline      string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	ew := &errWriter{w: w}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderHead(ew, page)
	ew.WriteString("<body>\n")
	r.renderNode(ew, page.Header)
	r.renderNode(ew, page.Body)
	r.renderNode(ew, page.Footer)
	r.renderNode(ew, page.Overlays)
	r.renderClientScript(ew, page)
	ew.WriteString("</body>\n</html>\n")

	return ew.err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w *errWriter, page PageData) {
	w.WriteString("<head>\n")
	w.WriteString(`  <meta charset="utf-8">` + "\n")
	w.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if page.Title != "" {
		w.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	if page.Description != "" {
		w.WriteString(`  <meta name="description" content="` + escapeAttr(page.Description) + `">` + "\n")
	}
	for _, href := range page.StyleSheets {
		w.WriteString(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}
	for _, script := range page.Scripts {
		r.renderScriptTag(w, script)
	}

	w.WriteString("</head>\n")
}

// renderScriptTag renders a script element.
func (r *Renderer) renderScriptTag(w *errWriter, script ScriptTag) {
	w.WriteString("  <script")
	if script.Src != "" {
		w.WriteString(` src="` + escapeAttr(script.Src) + `"`)
	}
	if script.Async {
		w.WriteString(" async")
	}
	if script.Defer {
		w.WriteString(" defer")
	}
	if script.CrossOrigin != "" {
		w.WriteString(` crossorigin="` + escapeAttr(script.CrossOrigin) + `"`)
	}
	w.WriteString(">")
	w.WriteString(script.Inline)
	w.WriteString("</script>\n")
}

// renderClientScript injects the thin client and its endpoints.
func (r *Renderer) renderClientScript(w *errWriter, page PageData) {
	src := page.ClientScript
	if src == "" {
		src = "/client.js"
	}
	endpoint := page.ActionEndpoint
	if endpoint == "" {
		endpoint = "/actions"
	}

	w.WriteString(`<script src="` + escapeAttr(src) + `" data-endpoint="` + escapeAttr(endpoint) + `"`)
	if page.SocketEndpoint != "" {
		w.WriteString(` data-socket="` + escapeAttr(page.SocketEndpoint) + `"`)
	}
	w.WriteString(" defer></script>\n")
}
