package consent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/electa-dev/electa/internal/errors"
	"github.com/electa-dev/electa/pkg/storage"
)

// Storage keys of the consent records.
const (
	ConsentKey     = "electa_cookie_consent"
	PreferencesKey = "electa_cookie_preferences"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Category names a kind of cookie the visitor can consent to.
type Category string

const (
	Necessary   Category = "necessary"
	Analytics   Category = "analytics"
	Advertising Category = "advertising"
)

// Preferences is the persisted preference record.
// Necessary is always true; Timestamp is set only when persisted.
type Preferences struct {
	Necessary   bool    `json:"necessary"`
	Analytics   bool    `json:"analytics"`
	Advertising bool    `json:"advertising"`
	Timestamp   *string `json:"timestamp"`
}

// Defaults returns the preferences of a visitor who has not decided.
func Defaults() Preferences {
	return Preferences{Necessary: true}
}

// Allows reports whether the preferences grant category c.
func (p Preferences) Allows(c Category) bool {
	switch c {
	case Necessary:
		return true
	case Analytics:
		return p.Analytics
	case Advertising:
		return p.Advertising
	default:
		return false
	}
}

// Toggle flips an optional category. Necessary cannot be toggled.
func Toggle(p Preferences, c Category) Preferences {
	switch c {
	case Analytics:
		p.Analytics = !p.Analytics
	case Advertising:
		p.Advertising = !p.Advertising
	}
	p.Necessary = true
	return p
}

// State is the consent decision state.
type State int

const (
	// NoDecision means no consent key is persisted.
	NoDecision State = iota
	// Decided means the visitor accepted, rejected or customised.
	Decided
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case NoDecision:
		return "NoDecision"
	case Decided:
		return "Decided"
	default:
		return "Unknown"
	}
}

// Option configures a Store.
type Option func(*Store)

// WithBus publishes decisions on bus.
func WithBus(bus *Bus) Option {
	return func(s *Store) {
		s.bus = bus
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is the persisted-preferences store of one visitor.
type Store struct {
	local  storage.Storage
	bus    *Bus
	now    func() time.Time
	logger *slog.Logger
}

// NewStore creates the consent store for one visitor.
func NewStore(local storage.Storage, opts ...Option) *Store {
	s := &Store{
		local:  local,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("store", PreferencesKey)
	return s
}

// Load returns the persisted preferences merged over the defaults.
// Missing, corrupt or unreadable values load as Defaults.
func (s *Store) Load(ctx context.Context) Preferences {
	p := Defaults()
	raw, ok, err := s.local.GetItem(ctx, PreferencesKey)
	if err != nil {
		s.logger.Warn("load failed", "code", "E201", "error", err)
		return Defaults()
	}
	if !ok || raw == "" {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("malformed stored value", "code", "E201", "error", err)
		return Defaults()
	}
	p.Necessary = true
	return p
}

// HasConsent reports whether the visitor made a decision.
// An unreadable medium counts as no decision.
func (s *Store) HasConsent(ctx context.Context) bool {
	_, ok, err := s.local.GetItem(ctx, ConsentKey)
	if err != nil {
		s.logger.Warn("consent flag unreadable", "code", "E201", "error", err)
		return false
	}
	return ok
}

// State returns the current decision state.
func (s *Store) State(ctx context.Context) State {
	if s.HasConsent(ctx) {
		return Decided
	}
	return NoDecision
}

// HasConsentFor reports whether the visitor granted category c.
func (s *Store) HasConsentFor(ctx context.Context, c Category) bool {
	return s.Load(ctx).Allows(c)
}

// AcceptAll grants every category.
func (s *Store) AcceptAll(ctx context.Context) (Preferences, error) {
	return s.save(ctx, Preferences{Necessary: true, Analytics: true, Advertising: true})
}

// RejectAll keeps only necessary cookies.
func (s *Store) RejectAll(ctx context.Context) (Preferences, error) {
	return s.save(ctx, Preferences{Necessary: true})
}

// SaveCustom persists caller-supplied flags. Necessary is forced true.
func (s *Store) SaveCustom(ctx context.Context, p Preferences) (Preferences, error) {
	return s.save(ctx, p)
}

func (s *Store) save(ctx context.Context, p Preferences) (Preferences, error) {
	ts := s.now().UTC().Format(timestampLayout)
	p.Necessary = true
	p.Timestamp = &ts

	data, err := json.Marshal(p)
	if err != nil {
		return p, errors.New("E202").Wrap(err)
	}
	if err := s.local.SetItem(ctx, PreferencesKey, string(data)); err != nil {
		s.logger.Warn("save failed", "code", "E202", "error", err)
		return p, errors.New("E202").Wrap(err)
	}
	if err := s.local.SetItem(ctx, ConsentKey, "true"); err != nil {
		s.logger.Warn("save failed", "code", "E202", "error", err)
		return p, errors.New("E202").Wrap(err)
	}

	s.publish(ctx, Event{Preferences: p})
	return p, nil
}

// Revoke deletes both consent records, returning to NoDecision.
// The revocation is published only once both are gone.
func (s *Store) Revoke(ctx context.Context) error {
	err1 := s.local.RemoveItem(ctx, ConsentKey)
	err2 := s.local.RemoveItem(ctx, PreferencesKey)
	for _, err := range []error{err1, err2} {
		if err != nil {
			s.logger.Warn("revoke failed", "code", "E202", "error", err)
			return errors.New("E202").Wrap(err)
		}
	}

	s.publish(ctx, Event{Preferences: Defaults(), Revoked: true})
	return nil
}

func (s *Store) publish(ctx context.Context, ev Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, ev)
	}
}
