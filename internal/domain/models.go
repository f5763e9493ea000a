package domain

// Book is a read-only catalog snapshot owned by the catalog collaborator.
// Cart and wishlist entries copy it at add time and never write it back.
type Book struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Price        float64  `json:"price"`
	MRP          float64  `json:"mrp"` // list price, price <= mrp
	Stock        int      `json:"stock"`
	Condition    string   `json:"condition"` // new | like-new | used
	SellerID     string   `json:"sellerId"`
	SellerName   string   `json:"sellerName"`
	Category     string   `json:"category"`
	Images       []string `json:"images,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	ReviewCount  int      `json:"reviewCount,omitempty"`
	DeliveryDays int      `json:"deliveryDays,omitempty"`
}

// Priceable reports whether the snapshot carries the fields aggregate
// computations need. Malformed entries are filtered out, never summed.
func (b Book) Priceable() bool {
	return b.Title != "" && b.Price > 0
}

// CartEntry is one cart line. ItemID is unique within a cart; adding the same
// book again grows Qty instead of inserting a second entry.
type CartEntry struct {
	ItemID string `json:"itemId"`
	Item   Book   `json:"item"`
	Qty    int    `json:"qty"`
}

func (e CartEntry) Book() Book    { return e.Item }
func (e CartEntry) Quantity() int { return e.Qty }

// CheckoutItem is a reconciled line headed into an order payload. Created
// transiently per checkout attempt, discarded after submission.
type CheckoutItem struct {
	ItemID string `json:"itemId"`
	Item   Book   `json:"item"`
	Qty    int    `json:"qty"`
}

func (i CheckoutItem) Book() Book    { return i.Item }
func (i CheckoutItem) Quantity() int { return i.Qty }

// OrderSubmission is the payload handed to the order collaborator.
// Immutable once sent.
type OrderSubmission struct {
	Items    []CheckoutItem `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Shipping float64        `json:"shipping"`
	Total    float64        `json:"total"`
	Address  string         `json:"address"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Payment  string         `json:"payment"` // cod | upi | card (only cod active)
}

// OrderResult is what the order collaborator returns on success.
type OrderResult struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status,omitempty"`
}

// Identity scopes persisted cart/wishlist state. Guest state is session-only;
// nothing of a guest's is written to durable storage.
type Identity struct {
	ID    string
	Guest bool
}
