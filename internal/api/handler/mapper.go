package handler

import (
	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// --- Request → Service input ---

func toProfile(p profileRequest) domain.Profile {
	return domain.Profile{
		Name:      p.Name,
		Phone:     p.Phone,
		Location:  p.Location,
		Education: p.Education,
		LinkedIn:  p.LinkedIn,
		PhotoURL:  p.PhotoURL,
	}
}

func toPlaceOrderInput(req placeOrderRequest, email string) ports.PlaceOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return ports.PlaceOrderInput{UserEmail: email, Items: items}
}

// --- Domain → Response ---

func toOrderResponse(o *domain.Order) orderResponse {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return orderResponse{
		ID:            o.ID,
		UserEmail:     o.UserEmail,
		Items:         items,
		Total:         o.Total,
		TransactionID: o.TransactionID,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderList(orders []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toFulfillmentResponse(r *domain.FulfillmentResult) fulfillmentResponse {
	resp := fulfillmentResponse{
		Success:          r.Success,
		ProductID:        r.ProductID,
		OrderID:          r.OrderID,
		PreviousQuantity: r.PreviousQuantity,
		NewQuantity:      r.NewQuantity,
		InventoryUpdated: r.InventoryUpdated,
		OrderDelivered:   r.OrderDelivered,
	}
	if r.Err != nil {
		resp.Error = r.Err.Error()
	}
	return resp
}
