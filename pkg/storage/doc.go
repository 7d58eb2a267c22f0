// Package storage provides the per-visitor key/value medium behind the
// persisted stores.
//
// It plays the role browser localStorage plays for a static site: every
// visitor owns one scope, each store writes one JSON value under a fixed
// key, and the last write wins. Backends:
//
//	backend := storage.NewMemoryBackend()
//	// or
//	backend, err := storage.OpenBolt("electa.db")
//	// or
//	backend := storage.NewSQLBackend(db)
//	// or
//	backend := storage.NewRedisBackend(redisClient)
//
// A backend is bound to one visitor with Scope:
//
//	local := storage.Scope(backend, visitorID)
//	raw, ok, err := local.GetItem(ctx, "myVotes")
package storage
