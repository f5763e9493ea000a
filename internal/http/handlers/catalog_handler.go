package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"bookbarn/internal/clients"
	"bookbarn/internal/domain"
	applog "bookbarn/internal/log"
	"bookbarn/internal/pricing"
	"bookbarn/internal/validate"
)

// Catalog is the read-only catalog collaborator boundary.
type Catalog interface {
	ListItems(ctx context.Context, f clients.CatalogFilter) ([]domain.Book, error)
	GetItem(ctx context.Context, id string) (domain.Book, error)
	ListBestsellers(ctx context.Context) ([]domain.Book, error)
}

type CatalogHandler struct {
	Catalog Catalog
}

type bookView struct {
	domain.Book
	DiscountPercent int `json:"discountPercent"`
}

func bookViews(books []domain.Book) []bookView {
	out := make([]bookView, 0, len(books))
	for _, b := range books {
		out = append(out, bookView{Book: b, DiscountPercent: pricing.DiscountPercent(b)})
	}
	return out
}

// List serves the browse/search page data, sorted client-side since the
// catalog collaborator returns unordered pages.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	f := clients.CatalogFilter{
		Category: c.Query("category"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 12),
	}
	if q := c.Query("q"); q != "" {
		qq, ok := validate.Q(q)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query"})
		}
		f.Query = qq
	}
	books, err := h.Catalog.ListItems(c.Context(), f)
	if err != nil {
		applog.Error(c, "catalog.list.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable, please retry"})
	}
	pricing.SortBooks(books, pricing.SortKey(c.Query("sort")))
	return c.JSON(fiber.Map{"items": bookViews(books)})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "book not found"})
	}
	b, err := h.Catalog.GetItem(c.Context(), id)
	if err != nil {
		applog.Error(c, "catalog.get.fail", err, map[string]any{"book": id})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "book not found"})
	}
	return c.JSON(bookView{Book: b, DiscountPercent: pricing.DiscountPercent(b)})
}

func (h *CatalogHandler) Bestsellers(c *fiber.Ctx) error {
	books, err := h.Catalog.ListBestsellers(c.Context())
	if err != nil {
		applog.Error(c, "catalog.bestsellers.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable, please retry"})
	}
	return c.JSON(fiber.Map{"items": bookViews(books)})
}
