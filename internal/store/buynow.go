package store

import (
	"encoding/json"

	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/repos"
)

const buyNowKey = "buyNowItem"

// buyNowRecord is the persisted shape: the catalog snapshot's fields flattened
// alongside the requested quantity.
type buyNowRecord struct {
	domain.Book
	Quantity int `json:"quantity"`
}

// BuyNow holds the ad-hoc single-item purchase marker that lets checkout
// bypass the persisted cart.
type BuyNow struct{ kv repos.KV }

func NewBuyNow(kv repos.KV) *BuyNow { return &BuyNow{kv: kv} }

// Set records the marker for the next checkout. Quantity defaults to 1 and is
// clamped to the book's stock.
func (b *BuyNow) Set(item domain.Book, qty int) error {
	rec := buyNowRecord{Book: item, Quantity: clampQty(qty, item.Stock)}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return b.kv.Set(buyNowKey, string(raw))
}

// Load returns the pending marker as a checkout line. A missing or malformed
// value reads as absence of data.
func (b *BuyNow) Load() (domain.CheckoutItem, bool) {
	raw, ok, err := b.kv.Get(buyNowKey)
	if err != nil {
		applog.Error(nil, "buynow.load.fail", err, nil)
		return domain.CheckoutItem{}, false
	}
	if !ok {
		return domain.CheckoutItem{}, false
	}
	var rec buyNowRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.ID == "" {
		applog.Error(nil, "buynow.load.corrupt", err, nil)
		return domain.CheckoutItem{}, false
	}
	qty := rec.Quantity
	if qty < 1 {
		qty = 1
	}
	return domain.CheckoutItem{ItemID: rec.ID, Item: rec.Book, Qty: qty}, true
}

// Clear drops the marker. Called after the buy-now path places successfully.
func (b *BuyNow) Clear() {
	if err := b.kv.Delete(buyNowKey); err != nil {
		applog.Error(nil, "buynow.clear.fail", err, nil)
	}
}
