package models

// Product is a catalogue entry. Seed products (CreatedBy == OriginSeed)
// are never mutated or deleted.
type Product struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Discount      int     `json:"discount,omitempty"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	InStock       bool    `json:"inStock"`
	IsEditable    bool    `json:"isEditable"`
	CreatedBy     Origin  `json:"createdBy"`
}

// Editable reports whether the product may be mutated or deleted.
func (p Product) Editable() bool {
	return p.IsEditable && p.CreatedBy.Mutable()
}
