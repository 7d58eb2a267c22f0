// Package views holds the page projections: pure functions from loaded
// data and store state to vdom trees.
//
// Projections never read storage or the network. Callers pass in the
// directory, catalogue, votes, cart lines and consent preferences they
// loaded for the request, so the same inputs always yield the same markup
// and every list has an explicit empty state.
//
// Patchable regions carry stable element ids (Target*) and action
// triggers carry a data-action marker (Marker*) plus the data-* fields the
// action decoder requires.
package views
