package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seatech/storefront-api/internal/api/metrics"
	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// Deliver decrements the product's stock by OrderAmount and marks the order
// delivered. The two writes are independent: neither waits for nor undoes
// the other. A failure of either one yields Success=false with no rollback.
//
// An error is returned only when nothing was written: invalid input, a
// missing product, or a rejected oversell.
func (s *OrderService) Deliver(ctx context.Context, in ports.DeliverInput) (*domain.FulfillmentResult, error) {
	if in.ProductID == "" || in.OrderID == "" || in.OrderAmount <= 0 {
		return nil, fmt.Errorf("deliver: %w: product id, order id and a positive amount are required", domain.ErrInvalidRequest)
	}

	start := time.Now()
	defer func() { metrics.FulfillmentDuration.Observe(time.Since(start).Seconds()) }()

	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		metrics.FulfillmentsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("deliver: %w", err)
	}
	if err := s.checkStock(product, in.OrderAmount); err != nil {
		metrics.FulfillmentsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("deliver: %w", err)
	}

	res := &domain.FulfillmentResult{
		ProductID:        in.ProductID,
		OrderID:          in.OrderID,
		PreviousQuantity: product.AvailableQuantity,
	}

	var invErr error
	if s.opts.SerializeInventory {
		res.PreviousQuantity, res.NewQuantity, invErr = s.swapInventory(ctx, product, in.OrderAmount)
	} else {
		res.NewQuantity = product.AvailableQuantity - in.OrderAmount
		invErr = s.products.SetAvailableQuantity(ctx, in.ProductID, res.NewQuantity)
	}
	if errors.Is(invErr, domain.ErrInsufficientStock) {
		// Stock ran out during a retry; nothing has been written yet.
		metrics.FulfillmentsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("deliver: %w", invErr)
	}
	res.InventoryUpdated = invErr == nil

	ordErr := s.orders.MarkDelivered(ctx, in.OrderID)
	res.OrderDelivered = ordErr == nil

	res.Success = res.InventoryUpdated && res.OrderDelivered
	if !res.Success {
		res.Err = errors.Join(domain.ErrPartialFulfillment, invErr, ordErr)
		metrics.FulfillmentsTotal.WithLabelValues("partial").Inc()
		s.log.Error().
			Err(res.Err).
			Str("product_id", in.ProductID).
			Str("order_id", in.OrderID).
			Bool("inventory_updated", res.InventoryUpdated).
			Bool("order_delivered", res.OrderDelivered).
			Msg("fulfillment incomplete")
		return res, nil
	}

	metrics.FulfillmentsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("product_id", in.ProductID).
		Str("order_id", in.OrderID).
		Int("previous_quantity", res.PreviousQuantity).
		Int("new_quantity", res.NewQuantity).
		Msg("order delivered")
	s.emit(domain.EventOrderDelivered, in.OrderID, "", domain.OrderDelivered)
	return res, nil
}

// swapInventory writes the decrement conditionally on the quantity it read,
// re-reading after every lost race. It returns the quantity the winning
// write was based on and the quantity written.
func (s *OrderService) swapInventory(ctx context.Context, product *domain.Product, amount int) (int, int, error) {
	current := product.AvailableQuantity
	for attempt := 1; ; attempt++ {
		next := current - amount
		swapped, err := s.products.CompareAndSetAvailableQuantity(ctx, product.ID, current, next)
		if err != nil {
			return current, current, err
		}
		if swapped {
			return current, next, nil
		}

		metrics.InventoryConflictsTotal.Inc()
		if attempt >= s.opts.MaxAttempts {
			return current, current, fmt.Errorf("%w after %d attempts", domain.ErrInventoryConflict, attempt)
		}
		s.log.Debug().Str("product_id", product.ID).Int("attempt", attempt).Msg("inventory changed, retrying")

		fresh, err := s.products.FindByID(ctx, product.ID)
		if err != nil {
			return current, current, err
		}
		if err := s.checkStock(fresh, amount); err != nil {
			return current, current, err
		}
		current = fresh.AvailableQuantity
	}
}

// checkStock enforces the oversell guard when it is enabled. Without it the
// quantity is allowed to go negative.
func (s *OrderService) checkStock(p *domain.Product, amount int) error {
	if s.opts.RejectOversell && amount > p.AvailableQuantity {
		return fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientStock, amount, p.AvailableQuantity)
	}
	return nil
}
