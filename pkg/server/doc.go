// Package server is the HTTP front of the Electa site.
//
// Pages are rendered on the server from the catalogue and the visitor's
// persisted sets. A thin client script delegates clicks and changes on
// elements carrying data-action to the action endpoint and swaps the
// returned fragments into the page by element id.
//
// # Visitors
//
// Every browser is keyed by an opaque visitor cookie (a UUID). The id
// scopes the storage backend, so saved votes, the cart and the cookie
// consent of one browser never meet those of another:
//
//	srv, err := server.New(server.Config{
//	    Storage: backend,
//	    Catalog: catalog.NewLoader(source),
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// # Actions
//
// POST /actions takes one action.Message as JSON and answers with an
// action.Response. With EnableWebSocket the same messages travel over
// /ws, one response frame per message, in order.
//
// # Consent-gated scripts
//
// Ad and analytics scripts are never part of a page until the visitor
// consents. Rendered pages carry the scripts the stored preferences allow;
// a consent decision taken through an action returns them as client
// events.
package server
