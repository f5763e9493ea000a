package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/pricing"
	"bookbarn/internal/validate"
)

type CartHandler struct {
	Sessions *SessionRegistry
	Catalog  Catalog
}

type sellerGroupView struct {
	SellerID   string             `json:"sellerId"`
	SellerName string             `json:"sellerName"`
	Items      []domain.CartEntry `json:"items"`
	Subtotal   float64            `json:"subtotal"`
}

type cartView struct {
	Items    []domain.CartEntry `json:"items"`
	Groups   []sellerGroupView  `json:"groups"`
	Subtotal float64            `json:"subtotal"`
	Savings  float64            `json:"savings"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
}

// newCartView derives every presentation value fresh from the entries.
// Nothing here is cached; correctness never depends on invalidation timing.
func newCartView(entries []domain.CartEntry) cartView {
	groups := pricing.GroupBySeller(entries)
	gv := make([]sellerGroupView, 0, len(groups))
	for _, g := range groups {
		gv = append(gv, sellerGroupView{
			SellerID:   g.SellerID,
			SellerName: g.SellerName,
			Items:      g.Items,
			Subtotal:   pricing.Subtotal(g.Items),
		})
	}
	return cartView{
		Items:    entries,
		Groups:   gv,
		Subtotal: pricing.Subtotal(entries),
		Savings:  pricing.Savings(entries),
		Shipping: pricing.ShippingFee,
		Total:    pricing.Total(entries),
	}
}

func (h *CartHandler) session(c *fiber.Ctx) *Session {
	sid := ensureSID(c)
	return h.Sessions.Session(sid, currentIdentity(c, sid))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	s := h.session(c)
	return c.JSON(newCartView(s.Cart.Entries()))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	s := h.session(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	book, err := h.Catalog.GetItem(c.Context(), bookID)
	if err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"book": bookID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable, please retry"})
	}
	s.Cart.Add(book, qty)
	applog.Audit(c, "cart.add", map[string]any{"book": bookID, "qty": qty})
	return c.JSON(newCartView(s.Cart.Entries()))
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	s := h.session(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	s.Cart.UpdateQuantity(bookID, validate.Qty(c.FormValue("qty")))
	return c.JSON(newCartView(s.Cart.Entries()))
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	s := h.session(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	s.Cart.Remove(bookID)
	applog.Audit(c, "cart.remove", map[string]any{"book": bookID})
	return c.JSON(newCartView(s.Cart.Entries()))
}
