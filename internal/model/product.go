package model

// Product represents a single product record from the catalog service.
// Fields mirror the upstream JSON; optional fields are pointers so that
// absent values stay absent when re-serialized.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Stock              *int     `json:"stock,omitempty"`
	Brand              *string  `json:"brand,omitempty"`
	Category           *string  `json:"category,omitempty"`
	Thumbnail          *string  `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
}

// ProductListing is the envelope returned by the catalog listing endpoint
type ProductListing struct {
	Products []Product `json:"products"`
}
