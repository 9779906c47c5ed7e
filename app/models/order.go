package models

import (
	"time"

	"github.com/shashiranjanraj/freshko/pkg/lifecycle"
)

// OrderItem is one line of an order: a snapshot of the product at purchase
// time, so later catalogue edits never rewrite history.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// CustomerInfo is the order's customer/shipping/payment metadata.
type CustomerInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// Order is an immutable purchase record owned by one user. The item list
// never changes after creation; only Status and UpdatedAt move, and only
// through legal lifecycle transitions. Orders are never deleted;
// cancellation is a status.
type Order struct {
	ID       int              `json:"id"`
	UserID   string           `json:"userId"`
	Email    string           `json:"email"`
	Items    []OrderItem      `json:"items"`
	Subtotal float64          `json:"subtotal"`
	Shipping float64          `json:"shipping"`
	Tax      float64          `json:"tax"`
	Discount float64          `json:"discount"`
	Total    float64          `json:"total"`
	Status   lifecycle.Status `json:"status"`
	Customer CustomerInfo     `json:"customer"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItem is an ephemeral (productId, quantity) pair scoped to the current
// session. Checkout consumes cart items into OrderItems and clears them.
type CartItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// WishlistItem marks a product the user saved for later.
type WishlistItem struct {
	ProductID int       `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}
