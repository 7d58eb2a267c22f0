package persist

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/electa-dev/electa/internal/errors"
	"github.com/electa-dev/electa/pkg/storage"
)

// MergeFunc resolves an Add whose key is already present.
// It returns the record to keep and whether anything changed.
type MergeFunc[R any] func(existing, incoming R) (R, bool)

// Option configures a store.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	maxQuantity int
}

// WithLogger sets the logger used for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxQuantity caps cart line quantities. Zero means unlimited.
// Ignored by stores without quantities.
func WithMaxQuantity(n int) Option {
	return func(o *options) {
		o.maxQuantity = n
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SetStore is a uniquely keyed record list persisted as one JSON array
// under a fixed storage key. Insertion order is preserved.
//
// Reads never fail: a missing key, a malformed value or an unavailable
// medium all load as the empty list.
type SetStore[R any, K comparable] struct {
	local  storage.Storage
	key    string
	keyOf  func(R) K
	merge  MergeFunc[R]
	valid  func(R) bool
	logger *slog.Logger
}

// NewSetStore creates a store persisting under key in local.
// keyOf extracts the uniqueness key of a record. Without a merge function
// adding an existing key is a no-op.
func NewSetStore[R any, K comparable](local storage.Storage, key string, keyOf func(R) K, merge MergeFunc[R], opts ...Option) *SetStore[R, K] {
	o := buildOptions(opts)
	return &SetStore[R, K]{
		local:  local,
		key:    key,
		keyOf:  keyOf,
		merge:  merge,
		logger: o.logger.With("store", key),
	}
}

// Key returns the storage key the store persists under.
func (s *SetStore[R, K]) Key() string {
	return s.key
}

// Load returns the persisted records, or an empty list.
func (s *SetStore[R, K]) Load(ctx context.Context) []R {
	raw, ok, err := s.local.GetItem(ctx, s.key)
	if err != nil {
		s.logger.Warn("load failed", "code", "E201", "error", errors.New("E201").Wrap(err))
		return []R{}
	}
	if !ok || raw == "" {
		return []R{}
	}

	var records []R
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("malformed stored value", "code", "E201", "error", err)
		return []R{}
	}
	if records == nil {
		return []R{}
	}
	if s.valid != nil {
		kept := records[:0]
		for _, r := range records {
			if s.valid(r) {
				kept = append(kept, r)
			}
		}
		if dropped := len(records) - len(kept); dropped > 0 {
			s.logger.Warn("dropped invalid stored records", "code", "E201", "count", dropped)
		}
		records = kept
	}
	return records
}

// Save replaces the persisted list with records in a single write.
func (s *SetStore[R, K]) Save(ctx context.Context, records []R) error {
	if records == nil {
		records = []R{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.New("E202").Wrap(err)
	}
	if err := s.local.SetItem(ctx, s.key, string(data)); err != nil {
		e := errors.New("E202").Wrap(err)
		s.logger.Warn("save failed", "code", e.Code, "error", e)
		return e
	}
	return nil
}

// Add appends r unless a record with the same key exists, in which case
// the merge function decides. Returns the post-state.
func (s *SetStore[R, K]) Add(ctx context.Context, r R) []R {
	records := s.Load(ctx)
	k := s.keyOf(r)

	idx := -1
	for i := range records {
		if s.keyOf(records[i]) == k {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		records = append(records, r)
	case s.merge != nil:
		merged, changed := s.merge(records[idx], r)
		if !changed {
			return records
		}
		records[idx] = merged
	default:
		return records
	}

	_ = s.Save(ctx, records)
	return records
}

// Remove drops every record matching k. Returns the post-state.
// Removing an absent key leaves the persisted value untouched.
func (s *SetStore[R, K]) Remove(ctx context.Context, k K) []R {
	records := s.Load(ctx)
	kept := records[:0:0]
	for _, r := range records {
		if s.keyOf(r) != k {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return records
	}

	_ = s.Save(ctx, kept)
	return kept
}

// Contains reports whether a record with key k is persisted.
func (s *SetStore[R, K]) Contains(ctx context.Context, k K) bool {
	for _, r := range s.Load(ctx) {
		if s.keyOf(r) == k {
			return true
		}
	}
	return false
}
