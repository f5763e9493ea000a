package handlers

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bookbarn/internal/checkout"
	"bookbarn/internal/domain"
	"bookbarn/internal/repos"
	"bookbarn/internal/store"
)

// Session bundles the per-client engine state: cart, wishlist, buy-now
// marker and the checkout reconciler driving them.
type Session struct {
	Identity   domain.Identity
	Cart       *store.Cart
	Wishlist   *store.Wishlist
	BuyNow     *store.BuyNow
	Reconciler *checkout.Reconciler
}

// SessionRegistry hands each browser session its engine state. Cart and
// wishlist keys are identity-scoped in the shared KV store; the buy-now
// marker is session-scoped so one tab's ad-hoc purchase can't leak into
// another client's checkout.
type SessionRegistry struct {
	mu       sync.Mutex
	kv       repos.KV
	orders   checkout.OrderClient
	sessions map[string]*Session
}

func NewSessionRegistry(kv repos.KV, orders checkout.OrderClient) *SessionRegistry {
	return &SessionRegistry{kv: kv, orders: orders, sessions: make(map[string]*Session)}
}

// Session returns the state for sid, rebuilding it when the identity changed
// since the last request (login or logout). Rebuilding resets the wishlist to
// empty and reloads it from the new identity's key only.
func (r *SessionRegistry) Session(sid string, identity domain.Identity) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sid]; ok && s.Identity == identity {
		return s
	}
	buyNow := store.NewBuyNow(repos.NewScopedKV(r.kv, sid))
	cart := store.NewCart(r.kv, identity)
	s := &Session{
		Identity:   identity,
		Cart:       cart,
		Wishlist:   store.NewWishlist(r.kv, identity),
		BuyNow:     buyNow,
		Reconciler: checkout.NewReconciler(cart, buyNow, r.orders),
	}
	r.sessions[sid] = s
	return s
}

// ensureSID reads or mints the session cookie, same shape for every handler.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// currentIdentity derives the active identity. The auth collaborator sets the
// uid cookie on login; without it the session is a guest.
func currentIdentity(c *fiber.Ctx, sid string) domain.Identity {
	if uid := c.Cookies("uid"); uid != "" {
		return domain.Identity{ID: uid}
	}
	return domain.Identity{ID: sid, Guest: true}
}
