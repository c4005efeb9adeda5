package order

import "time"

type Status string

// Pending orders await the OTP handoff. Completed is terminal; nothing
// transitions an order out of it and orders are never deleted.
// Processed exists in the status domain and the to-deliver view queries
// for it, but no transition currently produces it.
const (
	StatusPending   Status = "Pending"
	StatusProcessed Status = "Processed"
	StatusCompleted Status = "Completed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// LineItem freezes the purchased product at order-creation time. The
// price here is immune to later catalog changes.
type LineItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Order is the unit of settlement between exactly one buyer and one
// seller. One order carries one cart line.
type Order struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transactionId"`
	BuyerID       string     `json:"buyerId"`
	BuyerName     string     `json:"buyerName,omitempty"`
	SellerID      string     `json:"sellerId"`
	Items         []LineItem `json:"items"`
	TotalPrice    float64    `json:"totalPrice"`
	Status        Status     `json:"status"`
	OTPHash       string     `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// PlacedOrder pairs a fresh order with its raw OTP. This is the only
// moment the raw value leaves the system through the API.
type PlacedOrder struct {
	OrderID string `json:"orderId"`
	RawOTP  string `json:"rawOtp"`
}

// draft is a not-yet-persisted order assembled from one cart line.
type draft struct {
	TransactionID string
	SellerID      string
	TotalPrice    float64
	OTPHash       string
	Item          LineItem
}
