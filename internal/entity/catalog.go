package entity

import "time"

type DeliveryLocation struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Fee           float64 `json:"fee"`
	EstimatedTime string  `json:"estimated_time,omitempty"`
	Active        bool    `json:"active"`
}

type Offer struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	LinkURL     string    `json:"link_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Banner struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	ImageURL  string `json:"image_url"`
	LinkURL   string `json:"link_url,omitempty"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}

type Policy struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewsletterSubscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
