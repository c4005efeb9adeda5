package cart

import (
	"time"

	"campusmart-be/internal/product"
)

// Item is one cart line, denormalized with the product it points to.
// A user holds at most one Item per product.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Quantity  int             `json:"quantity"`
	Product   product.Product `json:"product"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AddItemParams struct {
	UserID    string
	ProductID string
	Quantity  int
}
