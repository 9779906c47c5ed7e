package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/lifecycle"
	"github.com/shashiranjanraj/freshko/pkg/logger"
)

// CreateOrder turns an item list into an immutable order: totals are
// computed deterministically from the items and the pricing policy, the
// next numeric id is assigned, status starts at processing, and the
// originating cart is cleared. Publishes orderCreated.
func (s *Store) CreateOrder(ctx context.Context, items []models.OrderItem, customer models.CustomerInfo, discount float64) (models.Order, Result) {
	s.ensureHydrated(ctx)

	s.mu.Lock()

	if len(items) == 0 {
		s.mu.Unlock()
		return models.Order{}, fail(CodeInvalidInput, "Cannot create an empty order")
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	subtotal = round2(subtotal)

	shipping := config.ShippingFlat()
	if subtotal >= config.FreeShippingOver() {
		shipping = 0
	}
	tax := round2(subtotal * config.TaxRate())
	discount = round2(discount)
	total := round2(subtotal + shipping + tax - discount)

	now := time.Now()
	o := models.Order{
		ID:       s.nextOrderIDLocked(),
		Email:    models.NormalizeEmail(customer.Email),
		Items:    append([]models.OrderItem(nil), items...),
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
		Status:   lifecycle.Processing,
		Customer: customer,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.session != nil {
		o.UserID = s.session.ID
		if o.Email == "" {
			o.Email = models.NormalizeEmail(s.session.Email)
		}
	}

	s.orders = append(s.orders, o)
	s.cart = nil

	s.persistOrders(ctx)
	s.persistState(ctx)
	s.mu.Unlock()

	s.publish(bus.OrderCreated)
	logger.Info("store: order created", "order", o.ID, "total", o.Total)
	return o, ok(fmt.Sprintf("Order #%d placed", o.ID))
}

// Checkout converts the current cart into order items (snapshotting each
// product's name, price and image) and creates the order.
func (s *Store) Checkout(ctx context.Context, customer models.CustomerInfo, discount float64) (models.Order, Result) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	items := make([]models.OrderItem, 0, len(s.cart))
	for _, ci := range s.cart {
		p := s.findProductLocked(ci.ProductID)
		if p == nil {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Title,
			Price:     p.Price,
			Quantity:  ci.Quantity,
			Image:     p.Image,
		})
	}
	s.mu.RUnlock()

	return s.CreateOrder(ctx, items, customer, discount)
}

// UpdateOrderStatus applies a lifecycle transition. Illegal moves are
// rejected and the order is left untouched; legal moves persist and
// publish orderUpdated.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int, status lifecycle.Status) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()

	o := s.findOrderLocked(id)
	if o == nil {
		s.mu.Unlock()
		return fail(CodeNotFound, "Order not found")
	}
	if !lifecycle.Valid(status) {
		s.mu.Unlock()
		return fail(CodeIllegalTransition, fmt.Sprintf("Unknown order status %q", status))
	}
	if !lifecycle.CanTransition(o.Status, status) {
		s.mu.Unlock()
		return fail(CodeIllegalTransition,
			fmt.Sprintf("An order cannot move from %s to %s", o.Status, status))
	}

	o.Status = status
	o.UpdatedAt = time.Now()
	s.persistOrders(ctx)
	s.mu.Unlock()

	s.publish(bus.OrderUpdated)
	return ok(fmt.Sprintf("Order #%d is now %s", id, status))
}

// GetOrderByID is a pure read over current in-memory state.
func (s *Store) GetOrderByID(ctx context.Context, id int) (models.Order, bool) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if o := s.findOrderLocked(id); o != nil {
		return *o, true
	}
	return models.Order{}, false
}

// GetUserOrders returns the authenticated user's orders, matched by user id
// or case-folded email.
func (s *Store) GetUserOrders(ctx context.Context) []models.Order {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}

	email := models.NormalizeEmail(s.session.Email)
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == s.session.ID || models.NormalizeEmail(o.Email) == email {
			out = append(out, o)
		}
	}
	return out
}

// GetAllOrders returns a copy of every order, for admin views.
func (s *Store) GetAllOrders(ctx context.Context) []models.Order {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) findOrderLocked(id int) *models.Order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}

// nextOrderIDLocked assigns monotonically increasing ids even after
// hydration from storage.
func (s *Store) nextOrderIDLocked() int {
	next := 1
	for _, o := range s.orders {
		if o.ID >= next {
			next = o.ID + 1
		}
	}
	return next
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
