package store_test

import (
	"testing"

	"bookbarn/internal/domain"
	"bookbarn/internal/store"
)

func TestWishlistToggle(t *testing.T) {
	w := store.NewWishlist(memkv(t), domain.Identity{ID: "u1"})

	if added := w.Toggle("x"); !added {
		t.Fatalf("first toggle must save the item")
	}
	if !w.Has("x") {
		t.Fatalf("item should be saved")
	}
	if added := w.Toggle("x"); added {
		t.Fatalf("second toggle must unsave the item")
	}
	if w.Has("x") {
		t.Fatalf("item should be gone")
	}
}

func TestWishlistIdentityIsolation(t *testing.T) {
	kv := memkv(t)

	a := store.NewWishlist(kv, domain.Identity{ID: "userA"})
	a.Toggle("x")
	a.Toggle("y")

	// logout, login as a user with no persisted wishlist
	b := store.NewWishlist(kv, domain.Identity{ID: "userB"})
	if ids := b.IDs(); len(ids) != 0 {
		t.Fatalf("userB must start empty, got %v", ids)
	}

	// and userA's list is still intact on return
	a2 := store.NewWishlist(kv, domain.Identity{ID: "userA"})
	ids := a2.IDs()
	if len(ids) != 2 || ids[0] != "x" || ids[1] != "y" {
		t.Fatalf("userA wishlist lost: %v", ids)
	}
}

func TestGuestWishlistNotPersisted(t *testing.T) {
	kv := memkv(t)
	guest := domain.Identity{ID: "sess-1", Guest: true}

	w := store.NewWishlist(kv, guest)
	w.Toggle("x")

	if _, ok, _ := kv.Get("wishlist_sess-1"); ok {
		t.Fatalf("guest wishlist must not touch durable storage")
	}
	// a new guest session starts from empty
	w2 := store.NewWishlist(kv, guest)
	if len(w2.IDs()) != 0 {
		t.Fatalf("guest wishlist must not survive the session store")
	}
}

func TestWishlistCorruptLoadDegradesToEmpty(t *testing.T) {
	kv := memkv(t)
	if err := kv.Set("wishlist_u1", `["x",`); err != nil {
		t.Fatal(err)
	}

	w := store.NewWishlist(kv, domain.Identity{ID: "u1"})
	if len(w.IDs()) != 0 {
		t.Fatalf("corrupt wishlist must degrade to empty")
	}
	if added := w.Toggle("z"); !added {
		t.Fatalf("wishlist should stay usable after corruption")
	}
}
