package domain

import "time"

type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         float64
	Category      string
	ImageURL      string
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductSummary is the projection returned by catalog listings and
// recommendations, and the exact shape stored in cache entries. It is a
// subset of Product on purpose: cached copies never carry stock or
// timestamps.
type ProductSummary struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
}

// SearchResult is ProductSummary plus the description, which search
// matches against and therefore returns.
type SearchResult struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		ImageURL:  p.ImageURL,
	}
}

func (p *Product) SearchResult() SearchResult {
	return SearchResult{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}
