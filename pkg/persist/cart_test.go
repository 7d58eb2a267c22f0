package persist

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCartStore_AddIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	c := NewCartStore(newLocal(), quiet)

	c.AddItem(ctx, "tote-bag", 15)
	got := c.AddItem(ctx, "tote-bag", 15)

	want := []CartLine{{ID: "tote-bag", Price: 15, Quantity: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddItem() mismatch (-want +got):\n%s", diff)
	}
}

func TestCartStore_Scenario(t *testing.T) {
	ctx := context.Background()
	c := NewCartStore(newLocal(), quiet)

	if len(c.Load(ctx)) != 0 {
		t.Fatal("cart should start empty")
	}

	lines := c.AddItem(ctx, "tote-bag", 15)
	if len(lines) != 1 || Total(lines) != 15 {
		t.Fatalf("after first add: lines=%v total=%v", lines, Total(lines))
	}

	lines = c.AddItem(ctx, "tote-bag", 15)
	if len(lines) != 1 || lines[0].Quantity != 2 || Total(lines) != 30 {
		t.Fatalf("after second add: lines=%v total=%v", lines, Total(lines))
	}
	if c.Count(ctx) != 2 {
		t.Errorf("Count() = %d, want 2", c.Count(ctx))
	}

	lines = c.Remove(ctx, "tote-bag")
	if len(lines) != 0 {
		t.Fatalf("after remove: lines=%v, want empty", lines)
	}
	if len(c.Load(ctx)) != 0 {
		t.Error("persisted cart should be empty")
	}
}

func TestCartStore_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	c := NewCartStore(newLocal(), quiet)
	c.AddItem(ctx, "mug", 12.5)
	c.AddItem(ctx, "tote-bag", 15)
	c.AddItem(ctx, "mug", 12.5)

	got := c.Load(ctx)
	want := []CartLine{
		{ID: "mug", Price: 12.5, Quantity: 2},
		{ID: "tote-bag", Price: 15, Quantity: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if Total(got) != 40 {
		t.Errorf("Total() = %v, want 40", Total(got))
	}
}

func TestCartStore_MaxQuantity(t *testing.T) {
	ctx := context.Background()
	c := NewCartStore(newLocal(), quiet, WithMaxQuantity(2))
	for i := 0; i < 5; i++ {
		c.AddItem(ctx, "badge", 3)
	}
	got := c.Load(ctx)
	if len(got) != 1 || got[0].Quantity != 2 {
		t.Errorf("Load() = %v, want one line with quantity 2", got)
	}
}

func TestCartLine_Subtotal(t *testing.T) {
	l := CartLine{ID: "x", Price: 2.5, Quantity: 3}
	if l.Subtotal() != 7.5 {
		t.Errorf("Subtotal() = %v, want 7.5", l.Subtotal())
	}
	if Count([]CartLine{l, {Quantity: 2}}) != 5 {
		t.Error("Count() should sum quantities")
	}
}

func TestCartStore_DropsLinesWithoutQuantity(t *testing.T) {
	ctx := context.Background()
	local := newLocal()
	stored := `[{"id":"tote-bag","price":15,"quantity":0},{"id":"mug","price":12.5,"quantity":-2},{"id":"cap","price":20,"quantity":1},{"id":"","price":5,"quantity":1}]`
	if err := local.SetItem(ctx, CartKey, stored); err != nil {
		t.Fatal(err)
	}
	c := NewCartStore(local, quiet)

	want := []CartLine{{ID: "cap", Price: 20, Quantity: 1}}
	if diff := cmp.Diff(want, c.Load(ctx)); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if c.Count(ctx) != 1 {
		t.Errorf("Count() = %d, want 1", c.Count(ctx))
	}

	got := c.AddItem(ctx, "tote-bag", 15)
	want = []CartLine{{ID: "cap", Price: 20, Quantity: 1}, {ID: "tote-bag", Price: 15, Quantity: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddItem() after invalid line mismatch (-want +got):\n%s", diff)
	}
}
