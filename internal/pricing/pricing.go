package pricing

import (
	"math"
	"sort"

	"bookbarn/internal/domain"
)

// Line is any order line the engine can price: cart entries and checkout
// items both qualify. Implementations expose the book snapshot and quantity.
type Line interface {
	Book() domain.Book
	Quantity() int
}

// ShippingFee is the flat shipping charge added on top of the subtotal.
// Kept as an explicit addend so the free-shipping policy can change without
// touching call sites.
const ShippingFee = 0.0

// Sentinel bucket for entries whose snapshot carries no seller id.
const (
	UnknownSellerID   = "unknown"
	UnknownSellerName = "Unknown Seller"
)

// Subtotal sums price*qty over lines that pass the validity filter.
func Subtotal[L Line](lines []L) float64 {
	total := 0.0
	for _, l := range lines {
		b := l.Book()
		if !b.Priceable() {
			continue
		}
		total += b.Price * float64(l.Quantity())
	}
	return total
}

// Savings sums max(0, mrp-price)*qty; zero when no line is discounted.
func Savings[L Line](lines []L) float64 {
	total := 0.0
	for _, l := range lines {
		b := l.Book()
		if !b.Priceable() {
			continue
		}
		if d := b.MRP - b.Price; d > 0 {
			total += d * float64(l.Quantity())
		}
	}
	return total
}

// Total is subtotal plus shipping.
func Total[L Line](lines []L) float64 {
	return Subtotal(lines) + ShippingFee
}

// DiscountPercent is the rounded percentage off list price; 0 when mrp is 0.
func DiscountPercent(b domain.Book) int {
	if b.MRP <= 0 {
		return 0
	}
	return int(math.Round((b.MRP - b.Price) / b.MRP * 100))
}

// SellerGroup is one partition of lines belonging to a single seller.
// Derived on every pricing pass, never stored.
type SellerGroup[L Line] struct {
	SellerID   string
	SellerName string
	Items      []L
}

// GroupBySeller partitions lines by seller id. Lines keep their insertion
// order within a group and groups appear in discovery order, so summing the
// group subtotals always reproduces the ungrouped subtotal.
func GroupBySeller[L Line](lines []L) []SellerGroup[L] {
	var groups []SellerGroup[L]
	index := map[string]int{}
	for _, l := range lines {
		b := l.Book()
		if !b.Priceable() {
			continue
		}
		id, name := b.SellerID, b.SellerName
		if id == "" {
			id, name = UnknownSellerID, UnknownSellerName
		}
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, SellerGroup[L]{SellerID: id, SellerName: name})
		}
		groups[i].Items = append(groups[i].Items, l)
	}
	return groups
}

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortPopularity   SortKey = "popularity" // review count desc, default
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortRating       SortKey = "rating"
	SortDiscount     SortKey = "discount"
	SortDeliveryDays SortKey = "delivery"
)

// SortBooks orders a catalog page in place. The sort is stable: ties retain
// their prior relative order.
func SortBooks(books []domain.Book, key SortKey) {
	var less func(a, b domain.Book) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b domain.Book) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b domain.Book) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b domain.Book) bool { return a.Rating > b.Rating }
	case SortDiscount:
		less = func(a, b domain.Book) bool { return DiscountPercent(a) > DiscountPercent(b) }
	case SortDeliveryDays:
		less = func(a, b domain.Book) bool { return a.DeliveryDays < b.DeliveryDays }
	default: // popularity
		less = func(a, b domain.Book) bool { return a.ReviewCount > b.ReviewCount }
	}
	sort.SliceStable(books, func(i, j int) bool { return less(books[i], books[j]) })
}
