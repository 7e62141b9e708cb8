package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order is the checkout stub's confirmation record. Nothing persists it; it
// is returned to the caller and handed to the notifier.
type Order struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
	CreatedAt  time.Time  `json:"created_at"`
}

type OrderNotifier interface {
	OrderPlaced(ctx context.Context, o *Order) error
}
