package seeders

import (
	"context"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/pkg/auth"
	"github.com/shashiranjanraj/freshko/pkg/storage"
)

func init() {
	Register("products", SeedProducts)
	Register("articles", SeedArticles)
	Register("users", SeedUsers)
}

// SeedProducts installs the original catalogue. Records are marked as seed
// content so the store refuses later edits, and the seeder is a no-op when
// a catalogue already exists.
func SeedProducts(ctx context.Context, f *storage.Facade) error {
	var existing []models.Product
	if f.GetJSON(ctx, storage.KeyProducts, &existing) && len(existing) > 0 {
		return nil
	}

	products := []models.Product{
		{
			ID: 1, Title: "Organic Bananas", Price: 1.99, OriginalPrice: 2.49,
			Discount: 20, Category: "fruits",
			Description: "Sweet organic bananas, sold by the bunch.",
			Image:       "/images/products/bananas.jpg", InStock: true,
		},
		{
			ID: 2, Title: "Fresh Strawberries", Price: 4.99, OriginalPrice: 5.99,
			Discount: 17, Category: "fruits",
			Description: "One pound of locally grown strawberries.",
			Image:       "/images/products/strawberries.jpg", InStock: true,
		},
		{
			ID: 3, Title: "Whole Grain Bread", Price: 3.49, Category: "bakery",
			Description: "Stone-baked whole grain loaf, sliced.",
			Image:       "/images/products/bread.jpg", InStock: true,
		},
		{
			ID: 4, Title: "Free-Range Eggs", Price: 5.49, Category: "dairy",
			Description: "A dozen large free-range eggs.",
			Image:       "/images/products/eggs.jpg", InStock: true,
		},
		{
			ID: 5, Title: "Cold-Pressed Olive Oil", Price: 12.99, OriginalPrice: 14.99,
			Discount: 13, Category: "pantry",
			Description: "500ml extra virgin olive oil, first press.",
			Image:       "/images/products/olive-oil.jpg", InStock: true,
		},
		{
			ID: 6, Title: "Wild Salmon Fillet", Price: 15.99, Category: "seafood",
			Description: "Skin-on wild-caught salmon, per pound.",
			Image:       "/images/products/salmon.jpg", InStock: false,
		},
	}
	for i := range products {
		products[i].IsEditable = false
		products[i].CreatedBy = models.OriginSeed
	}

	f.SetJSON(ctx, storage.KeyProducts, products)
	return nil
}

// SeedArticles installs the original editorial content.
func SeedArticles(ctx context.Context, f *storage.Facade) error {
	var existing []models.Article
	if f.GetJSON(ctx, storage.KeyArticles, &existing) && len(existing) > 0 {
		return nil
	}

	articles := []models.Article{
		{
			ID: 1, Title: "Eating With the Seasons",
			Excerpt: "Why seasonal produce tastes better and costs less.",
			Content: "Buying what is in season keeps flavour high and food miles low. " +
				"This guide walks the calendar from spring greens to winter roots.",
			Tags: []string{"seasonal", "produce"}, Category: "guides",
			Author: "freshko", Date: "2024-03-12",
			Image: "/images/articles/seasons.jpg",
		},
		{
			ID: 2, Title: "Five Ten-Minute Weeknight Dinners",
			Excerpt: "Fast meals built from pantry staples.",
			Content: "Each recipe uses six ingredients or fewer and one pan. " +
				"Stock the pantry once and dinner stops being a decision.",
			Tags: []string{"recipes", "quick"}, Category: "recipes",
			Author: "freshko", Date: "2024-05-02",
			Image: "/images/articles/weeknight.jpg",
		},
		{
			ID: 3, Title: "How to Store Fresh Herbs",
			Excerpt: "Stop throwing away wilted coriander.",
			Content: "Soft herbs live in water like cut flowers, hard herbs in a damp wrap. " +
				"Treated right, a bunch lasts two weeks instead of two days.",
			Tags: []string{"storage", "herbs"}, Category: "guides",
			Author: "freshko", Date: "2024-06-21",
			Image: "/images/articles/herbs.jpg",
		},
	}
	for i := range articles {
		articles[i].IsEditable = false
		articles[i].CreatedBy = models.OriginSeed
	}

	f.SetJSON(ctx, storage.KeyArticles, articles)
	return nil
}

// SeedUsers installs the demo admin account.
func SeedUsers(ctx context.Context, f *storage.Facade) error {
	var existing []models.User
	if f.GetJSON(ctx, storage.KeyUsers, &existing) && len(existing) > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	users := []models.User{{
		ID:        "seed-admin",
		FirstName: "Freshko",
		LastName:  "Admin",
		Email:     "admin@freshko.com",
		Role:      models.RoleAdmin,
		Password:  hash,
	}}

	f.SetJSON(ctx, storage.KeyUsers, users)
	return nil
}
