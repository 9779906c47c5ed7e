package models

// Article is a content entry, following the same seed/user-created
// immutability pattern as Product.
type Article struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags,omitempty"`
	Category   string   `json:"category"`
	Author     string   `json:"author"`
	Date       string   `json:"date"`
	Image      string   `json:"image,omitempty"`
	IsEditable bool     `json:"isEditable"`
	CreatedBy  Origin   `json:"createdBy"`
}

// Editable reports whether the article may be mutated or deleted.
func (a Article) Editable() bool {
	return a.IsEditable && a.CreatedBy.Mutable()
}
