package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/api/metrics"
	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

const defaultInventoryAttempts = 5

// FulfillmentOptions selects how Deliver writes inventory.
type FulfillmentOptions struct {
	// SerializeInventory replaces the blind quantity write with a
	// compare-and-swap so concurrent fulfillments never lose a decrement.
	SerializeInventory bool
	// RejectOversell refuses a delivery whose amount exceeds the stock.
	RejectOversell bool
	// MaxAttempts bounds compare-and-swap retries. Defaults to 5.
	MaxAttempts int
}

// OrderService drives orders through placed → pending → delivered.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	dedup    ports.PaymentDedup
	events   ports.EventSink
	opts     FulfillmentOptions
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderService wires the coordinator. dedup and events may be nil.
func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	dedup ports.PaymentDedup,
	events ports.EventSink,
	opts FulfillmentOptions,
	log zerolog.Logger,
) *OrderService {
	if dedup == nil {
		dedup = noDedup{}
	}
	if events == nil {
		events = discardEvents{}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultInventoryAttempts
	}
	return &OrderService{
		orders:   orders,
		products: products,
		dedup:    dedup,
		events:   events,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder stores a new order in the placed state.
func (s *OrderService) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if input.UserEmail == "" {
		return nil, fmt.Errorf("place order: %w: owner email is required", domain.ErrInvalidRequest)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("place order: %w: at least one item is required", domain.ErrInvalidRequest)
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	var total float64
	for i, it := range input.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price < 0 {
			return nil, fmt.Errorf("place order: %w: item[%d] is malformed", domain.ErrInvalidRequest, i)
		}
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
		total += it.Price * float64(it.Quantity)
	}

	now := s.now().UTC()
	order := &domain.Order{
		UserEmail: input.UserEmail,
		Items:     items,
		Total:     total,
		Status:    domain.OrderPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersPlacedTotal.Inc()
	s.log.Info().Str("order_id", order.ID).Str("email", order.UserEmail).Msg("order placed")
	s.emit(domain.EventOrderPlaced, order.ID, order.UserEmail, domain.OrderPlaced)
	return order, nil
}

// RecordPayment attaches a transaction reference and moves the order to
// pending. The reference is not checked against the payment processor.
// Replaying the same (order, transaction) pair is a no-op.
func (s *OrderService) RecordPayment(ctx context.Context, orderID, transactionID string) error {
	if orderID == "" || transactionID == "" {
		return fmt.Errorf("record payment: %w: order id and transaction id are required", domain.ErrInvalidRequest)
	}

	isDup, err := s.dedup.IsDuplicate(ctx, orderID, transactionID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.PaymentsRecordedTotal.WithLabelValues("duplicate").Inc()
		s.log.Debug().Str("order_id", orderID).Str("transaction_id", transactionID).Msg("duplicate payment skipped")
		return nil
	}

	if err := s.orders.MarkPaid(ctx, orderID, transactionID); err != nil {
		metrics.PaymentsRecordedTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("record payment: %w", err)
	}

	if err := s.dedup.Mark(ctx, orderID, transactionID); err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to set dedup key")
	}

	metrics.PaymentsRecordedTotal.WithLabelValues("recorded").Inc()
	s.log.Info().Str("order_id", orderID).Str("transaction_id", transactionID).Msg("payment recorded")
	s.emit(domain.EventOrderPaid, orderID, "", domain.OrderPending)
	return nil
}

// ListForOwner returns orders matching filter; callers scope UserEmail.
func (s *OrderService) ListForOwner(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, error) {
	if filter.UserEmail == "" {
		return nil, fmt.Errorf("list orders: %w: owner email is required", domain.ErrInvalidRequest)
	}
	return s.orders.List(ctx, filter)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx, ports.ListOrdersFilter{})
}

func (s *OrderService) emit(typ domain.OrderEventType, orderID, email string, status domain.OrderStatus) {
	s.events.Enqueue(domain.OrderEvent{
		Type:       typ,
		OrderID:    orderID,
		UserEmail:  email,
		Status:     status,
		OccurredAt: s.now().UTC(),
	})
}

type noDedup struct{}

func (noDedup) IsDuplicate(context.Context, string, string) (bool, error) { return false, nil }
func (noDedup) Mark(context.Context, string, string) error                { return nil }

type discardEvents struct{}

func (discardEvents) Enqueue(domain.OrderEvent) {}
