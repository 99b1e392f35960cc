package domain

import "time"

// ProductImage holds the responsive image variants of a product.
type ProductImage struct {
	Thumbnail string `json:"thumbnail" bson:"thumbnail"`
	Mobile    string `json:"mobile" bson:"mobile"`
	Tablet    string `json:"tablet" bson:"tablet"`
	Desktop   string `json:"desktop" bson:"desktop"`
}

// Product is a catalogue entry.
type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Price       float64      `json:"price"`
	Description string       `json:"description,omitempty"`
	Image       ProductImage `json:"image"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ProductPatch carries a partial product update. Nil fields are untouched.
type ProductPatch struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	Image       *ProductImage
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Description == nil && p.Image == nil
}
