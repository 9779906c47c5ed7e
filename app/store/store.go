// Package store holds the single in-memory source of truth for users,
// products, articles, orders, cart, wishlist and the authenticated session.
//
// The store hydrates its snapshot from the storage facade on first use and
// persists every mutation back before the action returns (write-through),
// so a reload never loses committed state. Within one process, actions are
// applied in call order. Cross-tab convergence is eventual: each tab
// hydrates independently and last write wins.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/logger"
	"github.com/shashiranjanraj/freshko/pkg/metrics"
	"github.com/shashiranjanraj/freshko/pkg/storage"
)

// Store is the mutable root of the application's business data.
// Construct with New and share one instance per process.
type Store struct {
	mu      sync.RWMutex
	storage *storage.Facade
	events  *bus.Bus

	users    []models.User
	products []models.Product
	articles []models.Article
	orders   []models.Order
	cart     []models.CartItem
	wishlist []models.WishlistItem
	session  *models.User

	hydrated bool
}

// persistedState is the ephemeral per-session slice of the store, kept
// under the generic freshko-store key.
type persistedState struct {
	Cart          []models.CartItem     `json:"cart"`
	Wishlist      []models.WishlistItem `json:"wishlist"`
	CurrentUserID string                `json:"currentUserId,omitempty"`
}

// New builds a Store over the given facade and event bus. events may be nil
// when no views are listening (CLI usage, tests).
func New(f *storage.Facade, events *bus.Bus) *Store {
	return &Store{storage: f, events: events}
}

// Hydrate loads the persisted snapshot. Called implicitly by every action;
// exposed so boot code can front-load the read.
func (s *Store) Hydrate(ctx context.Context) {
	s.ensureHydrated(ctx)
}

func (s *Store) ensureHydrated(ctx context.Context) {
	s.mu.RLock()
	done := s.hydrated
	s.mu.RUnlock()
	if done {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return
	}
	s.hydrateLocked(ctx)
}

func (s *Store) hydrateLocked(ctx context.Context) {
	start := time.Now()

	s.storage.GetJSON(ctx, storage.KeyUsers, &s.users)
	s.storage.GetJSON(ctx, storage.KeyProducts, &s.products)
	s.storage.GetJSON(ctx, storage.KeyArticles, &s.articles)
	s.storage.GetJSON(ctx, storage.KeyOrders, &s.orders)

	var state persistedState
	if s.storage.GetJSON(ctx, storage.KeyStore, &state) {
		s.cart = state.Cart
		s.wishlist = state.Wishlist
		if state.CurrentUserID != "" {
			for i := range s.users {
				if s.users[i].ID == state.CurrentUserID {
					u := s.users[i]
					s.session = &u
					break
				}
			}
		}
	}

	s.hydrated = true
	metrics.HydrationDuration.Observe(time.Since(start).Seconds())
	logger.Debug("store: hydrated",
		"users", len(s.users), "products", len(s.products),
		"articles", len(s.articles), "orders", len(s.orders))
}

// ── Write-through persistence (callers hold the write lock) ─────────────────

func (s *Store) persistUsers(ctx context.Context) {
	s.storage.SetJSON(ctx, storage.KeyUsers, s.users)
}

func (s *Store) persistProducts(ctx context.Context) {
	s.storage.SetJSON(ctx, storage.KeyProducts, s.products)
}

func (s *Store) persistArticles(ctx context.Context) {
	s.storage.SetJSON(ctx, storage.KeyArticles, s.articles)
}

func (s *Store) persistOrders(ctx context.Context) {
	s.storage.SetJSON(ctx, storage.KeyOrders, s.orders)
}

func (s *Store) persistState(ctx context.Context) {
	state := persistedState{Cart: s.cart, Wishlist: s.wishlist}
	if s.session != nil {
		state.CurrentUserID = s.session.ID
	}
	s.storage.SetJSON(ctx, storage.KeyStore, state)
}

// publish fires a bus event after a committed mutation.
func (s *Store) publish(e bus.Event) {
	metrics.BusEvents.WithLabelValues(string(e)).Inc()
	if s.events != nil {
		s.events.Publish(e)
	}
}
