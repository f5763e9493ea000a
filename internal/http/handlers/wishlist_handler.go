package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookbarn/internal/log"
	"bookbarn/internal/validate"
)

type WishlistHandler struct {
	Sessions *SessionRegistry
	Catalog  Catalog
}

func (h *WishlistHandler) session(c *fiber.Ctx) *Session {
	sid := ensureSID(c)
	return h.Sessions.Session(sid, currentIdentity(c, sid))
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	s := h.session(c)
	return c.JSON(fiber.Map{"items": s.Wishlist.IDs()})
}

// Toggle saves or unsaves a book and reports which happened, so the UI can
// flip its heart icon without a second round trip.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	s := h.session(c)
	bookID, ok := validate.ID(c.FormValue("bookId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing bookId"})
	}
	added := s.Wishlist.Toggle(bookID)
	action := "wishlist.unsave"
	if added {
		action = "wishlist.save"
	}
	applog.Audit(c, action, map[string]any{"book": bookID})
	return c.JSON(fiber.Map{"saved": added})
}
