package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookbarn/internal/checkout"
	applog "bookbarn/internal/log"
	"bookbarn/internal/pricing"
	"bookbarn/internal/validate"
)

type CheckoutHandler struct {
	Sessions *SessionRegistry
	Catalog  Catalog
}

func (h *CheckoutHandler) session(c *fiber.Ctx) *Session {
	sid := ensureSID(c)
	return h.Sessions.Session(sid, currentIdentity(c, sid))
}

// BuyNow records the ad-hoc single-item purchase marker and points the
// client at checkout. The persisted cart is left untouched.
func (h *CheckoutHandler) BuyNow(c *fiber.Ctx) error {
	s := h.session(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	book, err := h.Catalog.GetItem(c.Context(), bookID)
	if err != nil {
		applog.Error(c, "buynow.fail", err, map[string]any{"book": bookID})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable, please retry"})
	}
	if err := s.BuyNow.Set(book, qty); err != nil {
		applog.Error(c, "buynow.fail", err, map[string]any{"book": bookID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not start checkout"})
	}
	applog.Audit(c, "buynow.set", map[string]any{"book": bookID, "qty": qty})
	return c.Redirect("/checkout", fiber.StatusSeeOther)
}

// Preview shows the reconciled checkout set with derived totals.
// An empty set redirects back to the cart view.
func (h *CheckoutHandler) Preview(c *fiber.Ctx) error {
	s := h.session(c)
	items := s.Reconciler.Resolve()
	if len(items) == 0 {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"items":    items,
		"subtotal": pricing.Subtotal(items),
		"savings":  pricing.Savings(items),
		"shipping": pricing.ShippingFee,
		"total":    pricing.Total(items),
		"state":    s.Reconciler.State().String(),
	})
}

// Place drives one checkout attempt end to end.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	s := h.session(c)
	form := checkout.Form{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
		City:    c.FormValue("city"),
		State:   c.FormValue("state"),
		Pincode: c.FormValue("pincode"),
		Payment: c.FormValue("payment"),
	}

	res, err := s.Reconciler.Place(c.Context(), form)
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCheckout):
			return c.Redirect("/cart", fiber.StatusSeeOther)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "your order is already being placed"})
		case errors.As(err, &verr):
			applog.Warn(c, "checkout.validation.fail", map[string]any{"fields": verr.Fields})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verr.Fields,
				"state":  checkout.StateValidating.String(),
			})
		default:
			// Collaborator failure: surface the message verbatim, keep local
			// state so the user can retry without re-entering anything.
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
				"state": checkout.StateFailed.String(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"orderId": res.OrderID,
		"state":   checkout.StatePlaced.String(),
	})
}
