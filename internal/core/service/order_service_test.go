package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

type orderFixture struct {
	products *memProducts
	orders   *memOrders
	dedup    *memDedup
	events   *recordedEvents
	svc      *OrderService
}

func newOrderFixture(opts FulfillmentOptions, stock int) *orderFixture {
	f := &orderFixture{
		products: newMemProducts(&domain.Product{ID: "p1", Name: "Widget", Price: 2.5, AvailableQuantity: stock}),
		orders: newMemOrders(
			&domain.Order{ID: "o1", UserEmail: "cust@example.com", Status: domain.OrderPending},
			&domain.Order{ID: "o2", UserEmail: "cust@example.com", Status: domain.OrderPending},
		),
		dedup:  newMemDedup(),
		events: &recordedEvents{},
	}
	f.svc = NewOrderService(f.orders, f.products, f.dedup, f.events, opts, zerolog.Nop())
	return f
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserEmail: "cust@example.com",
		Items: []ports.OrderItemInput{
			{ProductID: "p1", Name: "Widget", Quantity: 2, Price: 2.5},
			{ProductID: "p2", Name: "Gadget", Quantity: 1, Price: 10},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderPlaced, order.Status)
	assert.Empty(t, order.TransactionID)
	assert.InDelta(t, 15.0, order.Total, 1e-9)
	assert.Equal(t, []domain.OrderEventType{domain.EventOrderPlaced}, f.events.types())
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{Items: []ports.OrderItemInput{{ProductID: "p1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserEmail: "cust@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
		UserEmail: "cust@example.com",
		Items:     []ports.OrderItemInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestOrderService_RecordPayment(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	f.orders.orders["o3"] = &domain.Order{ID: "o3", UserEmail: "cust@example.com", Status: domain.OrderPlaced}
	ctx := context.Background()

	require.NoError(t, f.svc.RecordPayment(ctx, "o3", "txn_1"))
	o := f.orders.get("o3")
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, "txn_1", o.TransactionID)

	// replay is detected before touching the store
	require.NoError(t, f.svc.RecordPayment(ctx, "o3", "txn_1"))
	assert.Equal(t, 1, f.orders.markPaidHits)
	assert.Equal(t, []domain.OrderEventType{domain.EventOrderPaid}, f.events.types())
}

func TestOrderService_RecordPaymentNeverRevertsDelivered(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	f.orders.orders["o3"] = &domain.Order{ID: "o3", Status: domain.OrderDelivered}

	err := f.svc.RecordPayment(context.Background(), "o3", "txn_late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.OrderDelivered, f.orders.get("o3").Status)
	assert.Empty(t, f.events.types())
}

func TestOrderService_RecordPaymentUnknownOrder(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	err := f.svc.RecordPayment(context.Background(), "missing", "txn_1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.svc.RecordPayment(context.Background(), "o1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestOrderService_Deliver(t *testing.T) {
	for _, serialize := range []bool{false, true} {
		f := newOrderFixture(FulfillmentOptions{SerializeInventory: serialize}, 10)

		res, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.True(t, res.InventoryUpdated)
		assert.True(t, res.OrderDelivered)
		assert.NoError(t, res.Err)
		assert.Equal(t, 10, res.PreviousQuantity)
		assert.Equal(t, 7, res.NewQuantity)
		assert.Equal(t, 7, f.products.quantity("p1"))
		assert.Equal(t, domain.OrderDelivered, f.orders.get("o1").Status)
		assert.Equal(t, []domain.OrderEventType{domain.EventOrderDelivered}, f.events.types())
	}
}

func TestOrderService_DeliverProductNotFound(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{SerializeInventory: true}, 10)

	res, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "nope", OrderID: "o1", OrderAmount: 3})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Zero(t, f.products.writes)
	assert.Zero(t, f.orders.writes)
	assert.Equal(t, domain.OrderPending, f.orders.get("o1").Status)
}

func TestOrderService_DeliverInventoryWriteFails(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	f.products.setErr = errors.New("write concern timeout")

	res, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.InventoryUpdated)
	assert.True(t, res.OrderDelivered, "order write is not skipped")
	assert.ErrorIs(t, res.Err, domain.ErrPartialFulfillment)
	assert.Equal(t, 10, f.products.quantity("p1"))
	assert.Equal(t, domain.OrderDelivered, f.orders.get("o1").Status)
	assert.Empty(t, f.events.types())
}

func TestOrderService_DeliverOrderWriteFails(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{SerializeInventory: true}, 10)
	f.orders.deliverErr = errors.New("primary stepped down")

	res, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.InventoryUpdated)
	assert.False(t, res.OrderDelivered)
	assert.ErrorIs(t, res.Err, domain.ErrPartialFulfillment)
	assert.Equal(t, 7, f.products.quantity("p1"), "inventory decrement is not compensated")
}

func TestOrderService_DeliverValidation(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	_, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestOrderService_DeliverOversell(t *testing.T) {
	// Without the guard stock may go negative.
	f := newOrderFixture(FulfillmentOptions{}, 2)
	res, err := f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, -1, f.products.quantity("p1"))

	f = newOrderFixture(FulfillmentOptions{RejectOversell: true}, 2)
	res, err = f.svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.products.quantity("p1"))
	assert.Equal(t, domain.OrderPending, f.orders.get("o1").Status)
}

// bothReadFirst makes the first two product reads wait for each other, so
// two fulfillments are guaranteed to observe the same starting quantity.
func bothReadFirst(products *memProducts) {
	var reads atomic.Int32
	var barrier sync.WaitGroup
	barrier.Add(2)
	products.afterFind = func() {
		if reads.Add(1) <= 2 {
			barrier.Done()
			barrier.Wait()
		}
	}
}

func deliverConcurrently(t *testing.T, svc *OrderService) []*domain.FulfillmentResult {
	t.Helper()
	results := make([]*domain.FulfillmentResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, orderID := range []string{"o1", "o2"} {
		wg.Add(1)
		go func(i int, orderID string) {
			defer wg.Done()
			results[i], errs[i] = svc.Deliver(context.Background(), ports.DeliverInput{
				ProductID:   "p1",
				OrderID:     orderID,
				OrderAmount: 3,
			})
		}(i, orderID)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	return results
}

func TestOrderService_ConcurrentDeliverBlindWriteLosesUpdate(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{SerializeInventory: false}, 10)
	bothReadFirst(f.products)

	for _, res := range deliverConcurrently(t, f.svc) {
		assert.True(t, res.Success)
		assert.Equal(t, 7, res.NewQuantity)
	}
	assert.Equal(t, 7, f.products.quantity("p1"))
}

func TestOrderService_ConcurrentDeliverSerialized(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{SerializeInventory: true}, 10)
	bothReadFirst(f.products)

	results := deliverConcurrently(t, f.svc)
	for _, res := range results {
		assert.True(t, res.Success)
	}
	assert.Equal(t, 4, f.products.quantity("p1"))
	assert.ElementsMatch(t, []int{7, 4}, []int{results[0].NewQuantity, results[1].NewQuantity})
	assert.Equal(t, domain.OrderDelivered, f.orders.get("o1").Status)
	assert.Equal(t, domain.OrderDelivered, f.orders.get("o2").Status)
}

type alwaysConflicting struct {
	*memProducts
}

func (alwaysConflicting) CompareAndSetAvailableQuantity(context.Context, string, int, int) (bool, error) {
	return false, nil
}

func TestOrderService_DeliverGivesUpAfterMaxAttempts(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{SerializeInventory: true, MaxAttempts: 3}, 10)
	svc := NewOrderService(f.orders, alwaysConflicting{f.products}, nil, nil, f.svc.opts, zerolog.Nop())

	res, err := svc.Deliver(context.Background(), ports.DeliverInput{ProductID: "p1", OrderID: "o1", OrderAmount: 3})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.InventoryUpdated)
	assert.ErrorIs(t, res.Err, domain.ErrInventoryConflict)
	assert.ErrorIs(t, res.Err, domain.ErrPartialFulfillment)
}

func TestOrderService_ListForOwner(t *testing.T) {
	f := newOrderFixture(FulfillmentOptions{}, 10)
	f.orders.orders["o3"] = &domain.Order{ID: "o3", UserEmail: "other@example.com", Status: domain.OrderPlaced}
	ctx := context.Background()

	mine, err := f.svc.ListForOwner(ctx, ports.ListOrdersFilter{UserEmail: "cust@example.com"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.ListForOwner(ctx, ports.ListOrdersFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
