package store_test

import (
	"testing"

	"bookbarn/internal/repos"
	"bookbarn/internal/store"
)

func TestBuyNowRoundTrip(t *testing.T) {
	bn := store.NewBuyNow(memkv(t))

	if _, ok := bn.Load(); ok {
		t.Fatalf("no marker should be pending initially")
	}

	if err := bn.Set(book("b1", 3), 5); err != nil {
		t.Fatal(err)
	}
	item, ok := bn.Load()
	if !ok {
		t.Fatalf("marker should be pending after Set")
	}
	if item.ItemID != "b1" || item.Qty != 3 {
		t.Fatalf("want b1 with qty clamped to stock 3, got %+v", item)
	}

	bn.Clear()
	if _, ok := bn.Load(); ok {
		t.Fatalf("marker should be gone after Clear")
	}
}

func TestBuyNowMalformedValueReadsAsAbsent(t *testing.T) {
	kv := memkv(t)
	if err := kv.Set("buyNowItem", "{{nope"); err != nil {
		t.Fatal(err)
	}
	bn := store.NewBuyNow(kv)
	if _, ok := bn.Load(); ok {
		t.Fatalf("malformed marker must read as absence of data")
	}
}

func TestBuyNowScopedPerSession(t *testing.T) {
	kv := memkv(t)
	one := store.NewBuyNow(repos.NewScopedKV(kv, "sess-1"))
	two := store.NewBuyNow(repos.NewScopedKV(kv, "sess-2"))

	if err := one.Set(book("b1", 9), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := two.Load(); ok {
		t.Fatalf("buy-now marker leaked across sessions")
	}
	if _, ok := one.Load(); !ok {
		t.Fatalf("own session marker should be visible")
	}
}
