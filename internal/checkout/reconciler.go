package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/pricing"
	"bookbarn/internal/store"
	"bookbarn/internal/validate"
)

// State tracks where a checkout attempt is in its lifecycle.
type State int

const (
	StateSelecting State = iota
	StateValidating
	StateSubmitting
	StatePlaced
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StatePlaced:
		return "placed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrEmptyCheckout means nothing resolved to submit; callers redirect to
	// the cart view instead of attempting an order.
	ErrEmptyCheckout = errors.New("nothing to check out")
	// ErrSubmissionInFlight guards against duplicate collaborator calls while
	// one submission is outstanding.
	ErrSubmissionInFlight = errors.New("an order submission is already in flight")
)

// ValidationError carries every failing field at once so the form can show
// all problems in one pass.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "checkout form validation failed" }

// Form is the full checkout input. Every field is enumerated here so the
// field set can't silently drift and validation stays exhaustive.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Payment string `json:"payment"`
}

// OrderClient is the external order-submission collaborator.
type OrderClient interface {
	CreateOrder(ctx context.Context, sub domain.OrderSubmission) (domain.OrderResult, error)
}

// Reconciler resolves the item set to submit, validates the form and drives
// a single order submission at a time.
type Reconciler struct {
	cart   *store.Cart
	buyNow *store.BuyNow
	orders OrderClient

	mu      sync.Mutex
	state   State
	lastErr string
}

func NewReconciler(cart *store.Cart, buyNow *store.BuyNow, orders OrderClient) *Reconciler {
	return &Reconciler{cart: cart, buyNow: buyNow, orders: orders}
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LastError is the collaborator's message from the most recent failed
// submission, verbatim.
func (r *Reconciler) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Resolve picks the checkout set: the pending buy-now item when one exists
// for this session, otherwise the full persisted cart. The result is always
// deduplicated to one line per item id.
func (r *Reconciler) Resolve() []domain.CheckoutItem {
	if item, ok := r.buyNow.Load(); ok {
		return Dedupe([]domain.CheckoutItem{item})
	}
	entries := r.cart.Entries()
	items := make([]domain.CheckoutItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.CheckoutItem{ItemID: e.ItemID, Item: e.Item, Qty: e.Qty})
	}
	return Dedupe(items)
}

// Dedupe merges lines sharing an item id into one line with the summed
// quantity. Running it over an already-deduplicated list changes nothing.
func Dedupe(items []domain.CheckoutItem) []domain.CheckoutItem {
	out := make([]domain.CheckoutItem, 0, len(items))
	index := map[string]int{}
	for _, it := range items {
		if i, ok := index[it.ItemID]; ok {
			out[i].Qty += it.Qty
			continue
		}
		index[it.ItemID] = len(out)
		out = append(out, it)
	}
	return out
}

// ValidateForm checks every field and returns the full map of failures,
// empty when the form is acceptable.
func ValidateForm(f Form) map[string]string {
	errs := map[string]string{}
	if _, ok := validate.Name(f.Name); !ok {
		errs["name"] = "name is required"
	}
	if _, ok := validate.Email(f.Email); !ok {
		errs["email"] = "a valid email is required"
	}
	if _, ok := validate.Phone(f.Phone); !ok {
		errs["phone"] = "phone must be 10 digits"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(f.State) == "" {
		errs["state"] = "state is required"
	}
	if _, ok := validate.Pincode(f.Pincode); !ok {
		errs["pincode"] = "pincode must be 6 digits"
	}
	switch f.Payment {
	case "", "cod":
		// cash on delivery is the only active method
	case "upi", "card":
		errs["payment"] = "payment method not available yet"
	default:
		errs["payment"] = "unknown payment method"
	}
	return errs
}

// Place runs one full checkout attempt: resolve, validate, submit. On
// success the item source is cleared (cart or buy-now marker, never both).
// On failure the cart and form inputs are left untouched so the user can
// retry without re-entering anything.
func (r *Reconciler) Place(ctx context.Context, f Form) (domain.OrderResult, error) {
	r.mu.Lock()
	if r.state == StateSubmitting {
		r.mu.Unlock()
		return domain.OrderResult{}, ErrSubmissionInFlight
	}
	r.state = StateSelecting

	_, fromBuyNow := r.buyNow.Load()
	items := r.Resolve()
	if len(items) == 0 {
		r.mu.Unlock()
		return domain.OrderResult{}, ErrEmptyCheckout
	}

	r.state = StateValidating
	if errs := ValidateForm(f); len(errs) > 0 {
		r.mu.Unlock()
		return domain.OrderResult{}, &ValidationError{Fields: errs}
	}

	r.state = StateSubmitting
	r.mu.Unlock()

	payment := f.Payment
	if payment == "" {
		payment = "cod"
	}
	subtotal := pricing.Subtotal(items)
	sub := domain.OrderSubmission{
		Items:    items,
		Subtotal: subtotal,
		Shipping: pricing.ShippingFee,
		Total:    pricing.Total(items),
		Address:  f.Address + ", " + f.City + ", " + f.State + " " + f.Pincode,
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		Payment:  payment,
	}

	res, err := r.orders.CreateOrder(ctx, sub)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateFailed
		r.lastErr = err.Error()
		applog.Error(nil, "order.place.fail", err, map[string]any{"items": len(items)})
		return domain.OrderResult{}, err
	}

	if fromBuyNow {
		r.buyNow.Clear()
	} else {
		r.cart.Clear()
	}
	r.state = StatePlaced
	r.lastErr = ""
	applog.Audit(nil, "order.place", map[string]any{"order_id": res.OrderID, "total": sub.Total})
	return res, nil
}
