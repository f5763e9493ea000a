package store_test

import (
	"testing"

	"bookbarn/internal/domain"
	"bookbarn/internal/repos"
	"bookbarn/internal/store"
)

func memkv(t *testing.T) *repos.KVRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return repos.NewKVRepo(db)
}

func book(id string, stock int) domain.Book {
	return domain.Book{ID: id, Title: "Book " + id, Price: 100, MRP: 120, Stock: stock, SellerID: "s1", SellerName: "Seller One"}
}

func TestCartAddMergesSameItem(t *testing.T) {
	c := store.NewCart(memkv(t), domain.Identity{ID: "u1"})
	b := book("b1", 10)

	c.Add(b, 1)
	c.Add(b, 1)

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("want one entry per item id, got %d", len(entries))
	}
	if entries[0].Qty != 2 {
		t.Fatalf("want merged qty 2, got %d", entries[0].Qty)
	}
}

func TestCartQuantityClamped(t *testing.T) {
	c := store.NewCart(memkv(t), domain.Identity{ID: "u1"})
	b := book("b1", 3)

	c.Add(b, 10)
	if got := c.Entries()[0].Qty; got != 3 {
		t.Fatalf("add beyond stock: want 3, got %d", got)
	}

	c.UpdateQuantity("b1", 10)
	if got := c.Entries()[0].Qty; got != 3 {
		t.Fatalf("update beyond stock: want 3, got %d", got)
	}

	c.UpdateQuantity("b1", 0)
	if got := c.Entries()[0].Qty; got != 1 {
		t.Fatalf("update below one: want 1, got %d", got)
	}
}

func TestCartZeroStockStillHoldsOne(t *testing.T) {
	c := store.NewCart(memkv(t), domain.Identity{ID: "u1"})
	c.Add(book("b1", 0), 5)
	if got := c.Entries()[0].Qty; got != 1 {
		t.Fatalf("zero stock clamps to 1, got %d", got)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	c := store.NewCart(memkv(t), domain.Identity{ID: "u1"})
	c.Add(book("b1", 5), 1)
	c.Add(book("b2", 5), 1)

	c.Remove("nope") // missing key never errors
	if c.Len() != 2 {
		t.Fatalf("remove of missing id must be a no-op, len=%d", c.Len())
	}

	c.Remove("b1")
	if c.Len() != 1 || c.Entries()[0].ItemID != "b2" {
		t.Fatalf("unexpected entries after remove: %+v", c.Entries())
	}

	c.UpdateQuantity("nope", 3) // also a no-op
	if c.Len() != 1 {
		t.Fatalf("update of missing id must be a no-op")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("clear must empty the cart")
	}
}

func TestCartPersistsAcrossSessions(t *testing.T) {
	kv := memkv(t)
	id := domain.Identity{ID: "u1"}

	c := store.NewCart(kv, id)
	c.Add(book("b1", 5), 2)

	// fresh store for the same identity sees the persisted lines
	c2 := store.NewCart(kv, id)
	entries := c2.Entries()
	if len(entries) != 1 || entries[0].Qty != 2 {
		t.Fatalf("persisted cart not reloaded: %+v", entries)
	}

	// and a different identity sees nothing
	c3 := store.NewCart(kv, domain.Identity{ID: "u2"})
	if c3.Len() != 0 {
		t.Fatalf("identities must not share carts")
	}
}

func TestGuestCartNotPersisted(t *testing.T) {
	kv := memkv(t)
	guest := domain.Identity{ID: "sess-1", Guest: true}

	c := store.NewCart(kv, guest)
	c.Add(book("b1", 5), 1)
	if c.Len() != 1 {
		t.Fatalf("guest cart must still work in memory")
	}

	if _, ok, _ := kv.Get("cart_sess-1"); ok {
		t.Fatalf("guest cart must not touch durable storage")
	}
}

func TestCartCorruptStateResets(t *testing.T) {
	kv := memkv(t)
	if err := kv.Set("cart_u1", `{"definitely": not json`); err != nil {
		t.Fatal(err)
	}

	c := store.NewCart(kv, domain.Identity{ID: "u1"})
	if c.Len() != 0 {
		t.Fatalf("corrupt state must degrade to an empty cart")
	}

	// the store stays usable and overwrites the bad value
	c.Add(book("b1", 5), 1)
	c2 := store.NewCart(kv, domain.Identity{ID: "u1"})
	if c2.Len() != 1 {
		t.Fatalf("cart should recover after corruption")
	}
}
