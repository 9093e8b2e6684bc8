package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderItemDocument struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Quantity  int     `bson:"quantity"`
	Price     float64 `bson:"price"`
}

type orderDocument struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	UserEmail     string              `bson:"user_email"`
	Items         []orderItemDocument `bson:"items"`
	Total         float64             `bson:"total"`
	TransactionID string              `bson:"transaction_id,omitempty"`
	Status        string              `bson:"status"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func (d orderDocument) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return &domain.Order{
		ID:            d.ID.Hex(),
		UserEmail:     d.UserEmail,
		Items:         items,
		Total:         d.Total,
		TransactionID: d.TransactionID,
		Status:        domain.OrderStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// Create inserts a new order document and sets o.ID.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := orderDocument{
		UserEmail: o.UserEmail,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, it := range o.Items {
		doc.Items = append(doc.Items, orderItemDocument{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

// List returns orders matching filter, newest first.
func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.UserEmail != "" {
		filter["user_email"] = f.UserEmail
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toDomain())
	}
	return orders, nil
}

// MarkPaid only matches orders whose status may still become pending, so a
// delivered order is never moved back.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, transactionID string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sources := make([]string, 0, 2)
	for _, s := range domain.SourcesOf(domain.OrderPending) {
		sources = append(sources, string(s))
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$in": sources}},
		bson.M{"$set": bson.M{
			"transaction_id": transactionID,
			"status":         string(domain.OrderPending),
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return fmt.Errorf("%w: order %s is already delivered", domain.ErrInvalidTransition, id)
}

func (r *OrderRepository) MarkDelivered(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrOrderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(domain.OrderDelivered), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
