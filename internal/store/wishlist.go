package store

import (
	"encoding/json"
	"sync"

	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/repos"
)

// Wishlist is one identity's saved-item set. The persistence key is derived
// from the identity id, so no two identities can read or write each other's
// list. Guest sessions keep an in-memory set that is never persisted.
type Wishlist struct {
	mu       sync.Mutex
	kv       repos.KV
	identity domain.Identity
	ids      []string
}

func wishlistKey(identityID string) string { return "wishlist_" + identityID }

// NewWishlist starts from an empty set and reloads the identity's persisted
// key if one exists. A corrupt load degrades to empty, never an error.
func NewWishlist(kv repos.KV, identity domain.Identity) *Wishlist {
	w := &Wishlist{kv: kv, identity: identity}
	w.load()
	return w
}

func (w *Wishlist) load() {
	if w.identity.Guest {
		return
	}
	raw, ok, err := w.kv.Get(wishlistKey(w.identity.ID))
	if err != nil {
		applog.Error(nil, "wishlist.load.fail", err, map[string]any{"identity": w.identity.ID})
		return
	}
	if !ok {
		return
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		applog.Error(nil, "wishlist.load.corrupt", err, map[string]any{"identity": w.identity.ID})
		return
	}
	w.ids = ids
}

func (w *Wishlist) persist() {
	if w.identity.Guest {
		return
	}
	b, err := json.Marshal(w.ids)
	if err != nil {
		applog.Error(nil, "wishlist.persist.fail", err, nil)
		return
	}
	if err := w.kv.Set(wishlistKey(w.identity.ID), string(b)); err != nil {
		applog.Error(nil, "wishlist.persist.fail", err, map[string]any{"identity": w.identity.ID})
	}
}

// Toggle inserts the id if absent and removes it if present. The returned
// flag reports whether the item ended up saved.
func (w *Wishlist) Toggle(itemID string) (added bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, id := range w.ids {
		if id == itemID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			w.persist()
			return false
		}
	}
	w.ids = append(w.ids, itemID)
	w.persist()
	return true
}

// Has reports whether the item is saved.
func (w *Wishlist) Has(itemID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.ids {
		if id == itemID {
			return true
		}
	}
	return false
}

// IDs returns the saved item ids in insertion order.
func (w *Wishlist) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}
