package domain

import "time"

type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}

type CartItem struct {
	ID        int64
	CartID    int64
	ProductID int64
	Quantity  int
}

// CartLine is a cart item joined with its product, priced out for display.
type CartLine struct {
	CartItemID  int64   `json:"cart_item_id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"total_price"`
}
