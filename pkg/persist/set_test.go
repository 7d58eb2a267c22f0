package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/electa-dev/electa/pkg/storage"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// brokenStorage fails every operation, like a disabled localStorage.
type brokenStorage struct{}

var errUnavailable = errors.New("storage unavailable")

func (brokenStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errUnavailable
}
func (brokenStorage) SetItem(context.Context, string, string) error { return errUnavailable }
func (brokenStorage) RemoveItem(context.Context, string) error      { return errUnavailable }

func newLocal() storage.Storage {
	return storage.Scope(storage.NewMemoryBackend(), "visitor")
}

func TestVoteStore_LoadEmpty(t *testing.T) {
	s := NewVoteStore(newLocal(), quiet)
	got := s.Load(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("Load() = %#v, want empty non-nil slice", got)
	}
}

func TestVoteStore_LoadMalformed(t *testing.T) {
	ctx := context.Background()
	local := newLocal()
	for _, raw := range []string{"{not json", `{"name":"x"}`, "null", ""} {
		if err := local.SetItem(ctx, VotesKey, raw); err != nil {
			t.Fatal(err)
		}
		if got := NewVoteStore(local, quiet).Load(ctx); len(got) != 0 {
			t.Errorf("Load() with %q = %v, want empty", raw, got)
		}
	}
}

func TestVoteStore_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewVoteStore(newLocal(), quiet)
	v := Vote{Name: "Jane Citizen", Party: "Independent", Electorate: "Warringah"}

	once := s.Add(ctx, v)
	twice := s.Add(ctx, v)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("add(add(S,r),r) != add(S,r) (-once +twice):\n%s", diff)
	}
	if len(s.Load(ctx)) != 1 {
		t.Errorf("Load() len = %d, want 1", len(s.Load(ctx)))
	}
}

func TestVoteStore_KeyIsNameAndElectorate(t *testing.T) {
	ctx := context.Background()
	s := NewVoteStore(newLocal(), quiet)

	s.Add(ctx, Vote{Name: "Sam Lee", Party: "Greens", Electorate: "Bass"})
	// Same name, other electorate: distinct record.
	s.Add(ctx, Vote{Name: "Sam Lee", Party: "Greens", Electorate: "Clark"})
	// Same key, different party: ignored.
	s.Add(ctx, Vote{Name: "Sam Lee", Party: "Labor", Electorate: "Bass"})

	want := []Vote{
		{Name: "Sam Lee", Party: "Greens", Electorate: "Bass"},
		{Name: "Sam Lee", Party: "Greens", Electorate: "Clark"},
	}
	if diff := cmp.Diff(want, s.Load(ctx)); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if !s.IsSaved(ctx, "Sam Lee", "Clark") {
		t.Error("IsSaved(Sam Lee, Clark) = false")
	}
	if s.IsSaved(ctx, "Sam Lee", "Lyons") {
		t.Error("IsSaved(Sam Lee, Lyons) = true")
	}
}

func TestVoteStore_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	local := newLocal()
	s := NewVoteStore(local, quiet)
	s.Add(ctx, Vote{Name: "A", Party: "P", Electorate: "E"})
	before, _, _ := local.GetItem(ctx, VotesKey)

	got := s.Remove(ctx, VoteKey{Name: "B", Electorate: "E"})

	after, _, _ := local.GetItem(ctx, VotesKey)
	if before != after {
		t.Errorf("persisted value changed: %q -> %q", before, after)
	}
	if len(got) != 1 {
		t.Errorf("Remove() = %v, want the unchanged set", got)
	}

	// Removing from a store that never persisted anything does not create the key.
	empty := newLocal()
	NewVoteStore(empty, quiet).Remove(ctx, VoteKey{Name: "A", Electorate: "E"})
	if _, ok, _ := empty.GetItem(ctx, VotesKey); ok {
		t.Error("Remove() on empty store wrote a value")
	}
}

func TestVoteStore_RemoveUndoesAdd(t *testing.T) {
	ctx := context.Background()
	s := NewVoteStore(newLocal(), quiet)
	s.Add(ctx, Vote{Name: "A", Party: "P", Electorate: "E"})
	s.Add(ctx, Vote{Name: "B", Party: "Q", Electorate: "E"})
	before := s.Load(ctx)

	r := Vote{Name: "C", Party: "R", Electorate: "F"}
	s.Add(ctx, r)
	after := s.Remove(ctx, r.Key())

	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("remove(add(S,r),key(r)) != S (-want +got):\n%s", diff)
	}
}

func TestVoteStore_UnavailableStorageFailsSoft(t *testing.T) {
	ctx := context.Background()
	s := NewVoteStore(brokenStorage{}, quiet)

	if got := s.Load(ctx); len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
	got := s.Add(ctx, Vote{Name: "A", Party: "P", Electorate: "E"})
	if len(got) != 1 {
		t.Errorf("Add() post-state = %v, want the in-memory record", got)
	}
	if err := s.Save(ctx, got); err == nil {
		t.Error("Save() on unavailable storage should report the failure")
	}
	if s.Contains(ctx, VoteKey{Name: "A", Electorate: "E"}) {
		t.Error("Contains() should read through to the unavailable medium")
	}
}

func TestSavedSet(t *testing.T) {
	set := SavedSet([]Vote{{Name: "A", Electorate: "E"}})
	if !set[VoteKey{Name: "A", Electorate: "E"}] {
		t.Error("SavedSet missing key")
	}
	if set[VoteKey{Name: "A", Electorate: "F"}] {
		t.Error("SavedSet has unexpected key")
	}
}
