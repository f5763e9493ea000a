package store

import (
	"encoding/json"
	"sync"

	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/repos"
)

// Cart holds one identity's cart lines and is the only mutation surface for
// them. Every mutation runs to completion under the lock and then persists
// the full entry list, so a reader observing the durable key right after a
// mutation sees the latest value. Guest carts stay in memory only.
type Cart struct {
	mu       sync.Mutex
	kv       repos.KV
	identity domain.Identity
	entries  []domain.CartEntry
}

func cartKey(identityID string) string { return "cart_" + identityID }

func NewCart(kv repos.KV, identity domain.Identity) *Cart {
	c := &Cart{kv: kv, identity: identity}
	c.load()
	return c
}

func (c *Cart) load() {
	if c.identity.Guest {
		return
	}
	raw, ok, err := c.kv.Get(cartKey(c.identity.ID))
	if err != nil {
		applog.Error(nil, "cart.load.fail", err, map[string]any{"identity": c.identity.ID})
		return
	}
	if !ok {
		return
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		// Corrupt persisted state degrades to an empty cart.
		applog.Error(nil, "cart.load.corrupt", err, map[string]any{"identity": c.identity.ID})
		return
	}
	c.entries = entries
}

func (c *Cart) persist() {
	if c.identity.Guest {
		return
	}
	b, err := json.Marshal(c.entries)
	if err != nil {
		applog.Error(nil, "cart.persist.fail", err, nil)
		return
	}
	if err := c.kv.Set(cartKey(c.identity.ID), string(b)); err != nil {
		applog.Error(nil, "cart.persist.fail", err, map[string]any{"identity": c.identity.ID})
	}
}

// clampQty keeps a requested quantity inside [1, max(1, stock)].
func clampQty(qty, stock int) int {
	upper := stock
	if upper < 1 {
		upper = 1
	}
	if qty > upper {
		return upper
	}
	if qty < 1 {
		return 1
	}
	return qty
}

// Add inserts a new line or, when the book is already in the cart, grows the
// existing line's quantity. The result is clamped to the book's stock.
func (c *Cart) Add(item domain.Book, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ItemID == item.ID {
			c.entries[i].Qty = clampQty(c.entries[i].Qty+qty, c.entries[i].Item.Stock)
			c.persist()
			return
		}
	}
	c.entries = append(c.entries, domain.CartEntry{
		ItemID: item.ID,
		Item:   item,
		Qty:    clampQty(qty, item.Stock),
	})
	c.persist()
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock].
// Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(itemID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ItemID == itemID {
			c.entries[i].Qty = clampQty(qty, c.entries[i].Item.Stock)
			c.persist()
			return
		}
	}
}

// Remove drops a line if present; missing ids are a no-op.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.entries {
		if c.entries[i].ItemID == itemID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.persist()
			return
		}
	}
}

// Clear empties the cart. Used after a successful order placement.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.persist()
}

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []domain.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
