package domain

import "time"

// Product is a catalog entry normalized from the CMS collections.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image"`
	Link        string    `json:"link"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Material    string    `json:"material,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Link  string  `json:"link"`
}
