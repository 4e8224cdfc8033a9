package dto

import "github.com/polkiloo/storefront/internal/server/http/flash"

// ItemResponse is a catalog product.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

// HomePage lists the catalog.
type HomePage struct {
	Messages []flash.Message `json:"messages"`
	Items    []ItemResponse  `json:"items"`
}

// ProductPage shows a single product.
type ProductPage struct {
	Messages []flash.Message `json:"messages"`
	Item     ItemResponse    `json:"item"`
}
