package domain

import (
	"time"
)

// Product is a catalog entry as served by the catalog provider.
type Product struct {
	ID               string    `json:"id"`
	Reference        string    `json:"reference"`
	EAN              string    `json:"ean,omitempty"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	NameEn           string    `json:"name_en,omitempty"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"short_description,omitempty"`
	Price            float64   `json:"price"`
	IsPriceTTC       bool      `json:"is_price_ttc"`
	CategoryID       string    `json:"category_id"`
	Collection       string    `json:"collection,omitempty"`
	Style            string    `json:"style,omitempty"`
	Materials        []string  `json:"materials,omitempty"`
	Brand            string    `json:"brand,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	IsAvailable      bool      `json:"is_available"`
	Featured         bool      `json:"featured"`
	IsNew            bool      `json:"is_new"`
	Stock            int       `json:"stock"`
	CreatedAt        time.Time `json:"created_at"`
}

// InStock reports whether the product can be ordered right now.
func (p *Product) InStock() bool {
	return p.IsAvailable && p.Stock > 0
}

// Category labels products for facets. ProductCount is derived, never stored.
type Category struct {
	ID           string `json:"id"`
	Code         string `json:"code,omitempty"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}
