package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookbarn/internal/clients"
	"bookbarn/internal/config"
	"bookbarn/internal/repos"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	CheckoutHandler *CheckoutHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	kv := repos.NewKVRepo(db)
	catalog := clients.NewCatalogClient(cfg.CatalogURL)
	orders := clients.NewOrderServiceClient(cfg.OrderURL)
	sessions := NewSessionRegistry(kv, orders)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalog},
		CartHandler:     &CartHandler{Sessions: sessions, Catalog: catalog},
		WishlistHandler: &WishlistHandler{Sessions: sessions, Catalog: catalog},
		CheckoutHandler: &CheckoutHandler{Sessions: sessions, Catalog: catalog},
	}
}
