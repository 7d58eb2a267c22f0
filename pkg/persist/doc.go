// Package persist implements the persisted-set stores: uniquely keyed
// record lists stored as one JSON array under a fixed key of a visitor's
// storage.
//
// The same SetStore backs the saved-vote list and the shopping cart:
//
//	votes := persist.NewVoteStore(local)
//	votes.Add(ctx, persist.Vote{Name: "Jane Citizen", Party: "Independent", Electorate: "Warringah"})
//
//	cart := persist.NewCartStore(local)
//	cart.AddItem(ctx, "tote-bag", 15) // quantity 1
//	cart.AddItem(ctx, "tote-bag", 15) // quantity 2
//
// Add is idempotent per key (the cart increments instead), Remove of an
// absent key is a no-op, and every read fails soft to the empty list.
package persist
