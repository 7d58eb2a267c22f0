package persist

import (
	"context"

	"github.com/electa-dev/electa/pkg/storage"
)

// VotesKey is the storage key of the saved-vote list.
const VotesKey = "myVotes"

// Vote is a candidate the visitor saved.
type Vote struct {
	Name       string `json:"name"`
	Party      string `json:"party"`
	Electorate string `json:"electorate"`
}

// VoteKey identifies a vote: a candidate may be saved once per electorate.
type VoteKey struct {
	Name       string
	Electorate string
}

// Key returns the uniqueness key of v.
func (v Vote) Key() VoteKey {
	return VoteKey{Name: v.Name, Electorate: v.Electorate}
}

// VoteStore persists the visitor's saved votes.
type VoteStore struct {
	*SetStore[Vote, VoteKey]
}

// NewVoteStore creates the vote store for one visitor.
func NewVoteStore(local storage.Storage, opts ...Option) *VoteStore {
	return &VoteStore{
		SetStore: NewSetStore(local, VotesKey, Vote.Key, nil, opts...),
	}
}

// IsSaved reports whether the candidate is saved for the electorate.
func (s *VoteStore) IsSaved(ctx context.Context, name, electorate string) bool {
	return s.Contains(ctx, VoteKey{Name: name, Electorate: electorate})
}

// SavedSet indexes votes by key for repeated membership checks while
// rendering a list.
func SavedSet(votes []Vote) map[VoteKey]bool {
	set := make(map[VoteKey]bool, len(votes))
	for _, v := range votes {
		set[v.Key()] = true
	}
	return set
}
