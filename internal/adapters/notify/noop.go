// Package notify holds the order-placed egress. The default is a no-op: the
// checkout stub confirms orders without any downstream system.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/monochrome/internal/domain"
)

type Noop struct{}

func (Noop) OrderPlaced(_ context.Context, o *domain.Order) error {
	log.Info().Str("order_id", o.ID.String()).Float64("subtotal", o.Subtotal).Msg("order placed")
	return nil
}
