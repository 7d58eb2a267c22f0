// Package action routes visitor actions to the persisted stores.
//
// The client sends the data-action marker of the clicked element with its
// data-* attributes and the page state. Decode turns that into a typed
// Action; Router.Dispatch mutates the visitor's stores and returns the
// re-projected views as patches keyed by target element id.
//
//	router := action.NewRouter(action.Config{
//	    Votes:     persist.NewVoteStore(local),
//	    Cart:      persist.NewCartStore(local),
//	    Consent:   consent.NewStore(local),
//	    Directory: dir,
//	    Products:  products,
//	})
//	res := router.Handle(ctx, msg)
//	resp, err := res.Render(renderer)
//
// Unknown markers are ignored. Triggers with missing data produce an
// error toast and leave the stores untouched.
package action
