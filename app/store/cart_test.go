package store_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/freshko/app/store"
)

func TestAddToCartMergesQuantities(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	p := seedProduct(t, s, "Brown Bread", 2.50)

	if res := s.AddToCart(ctx, p.ID, 1); !res.Success {
		t.Fatal(res.Message)
	}
	if res := s.AddToCart(ctx, p.ID, 2); !res.Success {
		t.Fatal(res.Message)
	}

	cart := s.Cart(ctx)
	if len(cart) != 1 {
		t.Fatalf("cart lines = %d, want 1", len(cart))
	}
	if cart[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", cart[0].Quantity)
	}
	if !approx(s.CartSubtotal(ctx), 7.50) {
		t.Errorf("subtotal = %.2f", s.CartSubtotal(ctx))
	}
}

func TestAddToCartValidation(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	p := seedProduct(t, s, "Brown Bread", 2.50)

	if res := s.AddToCart(ctx, p.ID, 0); res.Success || res.Code != store.CodeInvalidInput {
		t.Errorf("zero quantity: %+v", res)
	}
	if res := s.AddToCart(ctx, 999, 1); res.Success || res.Code != store.CodeNotFound {
		t.Errorf("unknown product: %+v", res)
	}
	if len(s.Cart(ctx)) != 0 {
		t.Error("rejected adds reached the cart")
	}
}

func TestSetCartQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	p := seedProduct(t, s, "Brown Bread", 2.50)
	s.AddToCart(ctx, p.ID, 2)

	if res := s.SetCartQuantity(ctx, p.ID, 5); !res.Success {
		t.Fatal(res.Message)
	}
	if s.Cart(ctx)[0].Quantity != 5 {
		t.Error("quantity not updated")
	}

	if res := s.SetCartQuantity(ctx, p.ID, 0); !res.Success {
		t.Fatal(res.Message)
	}
	if len(s.Cart(ctx)) != 0 {
		t.Error("zero quantity must remove the line")
	}

	if res := s.RemoveFromCart(ctx, p.ID); res.Success || res.Code != store.CodeNotFound {
		t.Errorf("removing an absent line: %+v", res)
	}
}

func TestWishlistDeduplicates(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	p := seedProduct(t, s, "Olive Oil", 9.90)

	if res := s.AddToWishlist(ctx, p.ID); !res.Success {
		t.Fatal(res.Message)
	}
	if res := s.AddToWishlist(ctx, p.ID); !res.Success {
		t.Fatal(res.Message)
	}
	if n := len(s.Wishlist(ctx)); n != 1 {
		t.Fatalf("wishlist size = %d, want 1", n)
	}

	if res := s.RemoveFromWishlist(ctx, p.ID); !res.Success {
		t.Fatal(res.Message)
	}
	if len(s.Wishlist(ctx)) != 0 {
		t.Error("wishlist not emptied")
	}
}

func TestCartSurvivesRehydration(t *testing.T) {
	ctx := context.Background()
	s, facade, _ := newTestStore(t)

	p := seedProduct(t, s, "Brown Bread", 2.50)
	s.AddToCart(ctx, p.ID, 2)
	s.AddToWishlist(ctx, p.ID)

	reloaded := store.New(facade, nil)
	if got := reloaded.Cart(ctx); len(got) != 1 || got[0].Quantity != 2 {
		t.Errorf("cart after reload: %+v", got)
	}
	if got := reloaded.Wishlist(ctx); len(got) != 1 {
		t.Errorf("wishlist after reload: %+v", got)
	}
}
