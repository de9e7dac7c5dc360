package entity

import "time"

// Product conditions.
const (
	ConditionNew    = "new"
	ConditionThrift = "thrift"
)

type Product struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	Price         float64            `json:"price"`
	OriginalPrice float64            `json:"original_price,omitempty"`
	CategoryID    int                `json:"category_id"`
	CategoryName  string             `json:"category_name,omitempty"`
	InStock       bool               `json:"in_stock"`
	IsFeatured    bool               `json:"is_featured"`
	IsNew         bool               `json:"is_new"`
	IsOffer       bool               `json:"is_offer"`
	Condition     string             `json:"condition"`
	Images        []ProductImage     `json:"images"`
	Variations    []ProductVariation `json:"variations"`
	CreatedAt     time.Time          `json:"created_at"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

type ProductVariation struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
}

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ImageURL     string    `json:"image_url,omitempty"`
	Active       bool      `json:"active"`
	SortOrder    int       `json:"sort_order"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}
