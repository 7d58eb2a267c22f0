// Package render provides server-side HTML rendering of vdom trees.
//
// All text and attribute values are escaped. vdom.Raw nodes are the one
// exception and are reserved for sanitised article bodies.
//
// # Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(views.MyVotes(votes))
//
// Full documents go through RenderPage, which emits the head, the page
// regions and the thin client script tag:
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:  "My Votes | Electa",
//	    Header: views.SiteHeader(cartCount),
//	    Body:   body,
//	})
//
// RenderFragments renders the per-target patches returned by an action.
package render
