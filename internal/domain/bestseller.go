package domain

type BestSeller struct {
	ProductID    int64
	QuantitySold int
}

// BestSellerEntry is a best-seller row joined with its product, and the
// shape cached under the best_sellers key.
type BestSellerEntry struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
	QuantitySold int     `json:"quantity_sold"`
}
