package domain

import "github.com/google/uuid"

// CartItem is one cart line. Identity is (ProductID, Size): the same product
// in two sizes is two distinct lines.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
}

// CartItemID derives the composite line key.
func CartItemID(productID, size string) string {
	if size == "" {
		return productID
	}
	return productID + "-" + size
}

// Rect is the screen rectangle an add-to-cart animation starts from.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CartFlight describes the single in-flight add-to-cart animation: the product
// is not committed to the cart until the flight completes or times out.
type CartFlight struct {
	ID      uuid.UUID `json:"id"`
	Image   string    `json:"image"`
	Origin  Rect      `json:"origin"`
	Product Product   `json:"product"`
	Size    string    `json:"size,omitempty"`
}
