package store

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/freshko/app/models"
)

// NewProduct is the input for user-created catalogue entries.
type NewProduct struct {
	Title         string
	Price         float64
	OriginalPrice float64
	Discount      int
	Category      string
	Description   string
	Image         string
	InStock       bool
}

// ProductPatch is a field-merge update; nil fields are left untouched.
type ProductPatch struct {
	Title       *string
	Price       *float64
	Discount    *int
	Category    *string
	Description *string
	Image       *string
	InStock     *bool
}

// CreateProduct appends a user-created product with the next numeric id.
func (s *Store) CreateProduct(ctx context.Context, in NewProduct) (models.Product, Result) {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Title == "" {
		return models.Product{}, fail(CodeInvalidInput, "Title is required")
	}

	p := models.Product{
		ID:            s.nextProductIDLocked(),
		Title:         in.Title,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Discount:      in.Discount,
		Category:      in.Category,
		Description:   in.Description,
		Image:         in.Image,
		InStock:       in.InStock,
		IsEditable:    true,
		CreatedBy:     models.OriginUser,
	}

	s.products = append(s.products, p)
	s.persistProducts(ctx)
	return p, ok("Product created")
}

// UpdateProduct merges patch into the product. Seed catalogue entries are
// immutable and fail with NotEditable, leaving the store unchanged.
func (s *Store) UpdateProduct(ctx context.Context, id int, patch ProductPatch) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProductLocked(id)
	if p == nil {
		return fail(CodeNotFound, "Product not found")
	}
	if !p.Editable() {
		return fail(CodeNotEditable, "This product is part of the original catalogue and cannot be modified")
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Discount != nil {
		p.Discount = *patch.Discount
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}

	s.persistProducts(ctx)
	return ok("Product updated")
}

// DeleteProduct removes a user-created product. Seed entries fail with
// NotEditable.
func (s *Store) DeleteProduct(ctx context.Context, id int) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(CodeNotFound, "Product not found")
	}
	if !s.products[idx].Editable() {
		return fail(CodeNotEditable, "This product is part of the original catalogue and cannot be deleted")
	}

	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.persistProducts(ctx)
	return ok("Product deleted")
}

// SearchProducts matches query against title, category and description,
// case-insensitively. An empty query returns everything.
func (s *Store) SearchProducts(ctx context.Context, query string) []models.Product {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]models.Product, len(s.products))
		copy(out, s.products)
		return out
	}

	var out []models.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// GetProductByID is a pure read over current in-memory state.
func (s *Store) GetProductByID(ctx context.Context, id int) (models.Product, bool) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.findProductLocked(id); p != nil {
		return *p, true
	}
	return models.Product{}, false
}

// GetAllProducts returns a copy of the catalogue.
func (s *Store) GetAllProducts(ctx context.Context) []models.Product {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) findProductLocked(id int) *models.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *Store) nextProductIDLocked() int {
	next := 1
	for _, p := range s.products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}
