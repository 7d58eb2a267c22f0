package server

import "errors"

// Sentinel errors for server setup and request handling.
var (
	// ErrMissingStorage is returned by New when Config.Storage is nil.
	ErrMissingStorage = errors.New("server: storage backend is required")

	// ErrMissingCatalog is returned by New when Config.Catalog is nil.
	ErrMissingCatalog = errors.New("server: catalog loader is required")

	// ErrSecureCookiesRequired is returned when SecureCookies is set but the
	// request did not arrive over TLS.
	ErrSecureCookiesRequired = errors.New("server: secure cookies require a TLS request")

	// ErrInvalidMessage is returned for an action body that is not a
	// message.
	ErrInvalidMessage = errors.New("server: invalid action message")
)
