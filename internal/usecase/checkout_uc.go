package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutUC turns the current cart into an order. There is no payment leg:
// the order is confirmed immediately, handed to the notifier, and the cart is
// cleared. A notifier failure is logged but does not fail the order.
type CheckoutUC struct {
	Cart     *CartUC
	Notifier domain.OrderNotifier
}

func (uc *CheckoutUC) PlaceOrder(ctx context.Context, email, name string) (*domain.Order, error) {
	items := uc.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totalItems := 0
	subtotal := 0.0
	for _, it := range items {
		totalItems += it.Quantity
		subtotal += it.Product.Price * float64(it.Quantity)
	}

	order := &domain.Order{
		ID:         uuid.New(),
		Email:      email,
		Name:       name,
		Items:      items,
		TotalItems: totalItems,
		Subtotal:   subtotal,
		CreatedAt:  time.Now().UTC(),
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.OrderPlaced(ctx, order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).Msg("order notification failed")
		}
	}

	uc.Cart.Clear(ctx)
	uc.Cart.SetIsOpen(false)
	return order, nil
}
