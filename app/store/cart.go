package store

import (
	"context"
	"time"

	"github.com/shashiranjanraj/freshko/app/models"
)

// AddToCart adds qty of a product, merging quantities when the product is
// already present. Cart changes are same-tab concerns: persisted, but no
// bus event.
func (s *Store) AddToCart(ctx context.Context, productID, qty int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return fail(CodeInvalidInput, "Quantity must be positive")
	}
	if s.findProductLocked(productID) == nil {
		return fail(CodeNotFound, "Product not found")
	}

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity += qty
			s.persistState(ctx)
			return ok("Cart updated")
		}
	}

	s.cart = append(s.cart, models.CartItem{ProductID: productID, Quantity: qty})
	s.persistState(ctx)
	return ok("Added to cart")
}

// SetCartQuantity sets the quantity for a product already in the cart.
// A quantity of zero or less removes the line.
func (s *Store) SetCartQuantity(ctx context.Context, productID, qty int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			if qty <= 0 {
				s.cart = append(s.cart[:i], s.cart[i+1:]...)
			} else {
				s.cart[i].Quantity = qty
			}
			s.persistState(ctx)
			return ok("Cart updated")
		}
	}
	return fail(CodeNotFound, "Product is not in the cart")
}

// RemoveFromCart deletes a product's line from the cart.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) Result {
	return s.SetCartQuantity(ctx, productID, 0)
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.persistState(ctx)
}

// Cart returns a copy of the current cart.
func (s *Store) Cart(ctx context.Context) []models.CartItem {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartSubtotal prices the cart against the current catalogue.
func (s *Store) CartSubtotal(ctx context.Context) float64 {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := 0.0
	for _, ci := range s.cart {
		if p := s.findProductLocked(ci.ProductID); p != nil {
			subtotal += p.Price * float64(ci.Quantity)
		}
	}
	return round2(subtotal)
}

// AddToWishlist saves a product for later. Adding twice is a no-op.
func (s *Store) AddToWishlist(ctx context.Context, productID int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findProductLocked(productID) == nil {
		return fail(CodeNotFound, "Product not found")
	}

	for _, w := range s.wishlist {
		if w.ProductID == productID {
			return ok("Already in wishlist")
		}
	}

	s.wishlist = append(s.wishlist, models.WishlistItem{ProductID: productID, AddedAt: time.Now()})
	s.persistState(ctx)
	return ok("Added to wishlist")
}

// RemoveFromWishlist drops a product from the wishlist.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wishlist {
		if s.wishlist[i].ProductID == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			s.persistState(ctx)
			return ok("Removed from wishlist")
		}
	}
	return fail(CodeNotFound, "Product is not in the wishlist")
}

// Wishlist returns a copy of the current wishlist.
func (s *Store) Wishlist(ctx context.Context) []models.WishlistItem {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.WishlistItem, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}
