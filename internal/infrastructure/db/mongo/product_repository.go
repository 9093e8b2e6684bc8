package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seatech/storefront-api/internal/core/domain"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Description       string             `bson:"description,omitempty"`
	ImageURL          string             `bson:"image_url,omitempty"`
	Price             float64            `bson:"price"`
	MinimumOrder      int                `bson:"minimum_order"`
	AvailableQuantity int                `bson:"available_quantity"`
}

func (d productDocument) toDomain() *domain.Product {
	return &domain.Product{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Description:       d.Description,
		ImageURL:          d.ImageURL,
		Price:             d.Price,
		MinimumOrder:      d.MinimumOrder,
		AvailableQuantity: d.AvailableQuantity,
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new product document and sets p.ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := productDocument{
		Name:              p.Name,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		Price:             p.Price,
		MinimumOrder:      p.MinimumOrder,
		AvailableQuantity: p.AvailableQuantity,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) SetAvailableQuantity(ctx context.Context, id string, quantity int) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"available_quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// CompareAndSetAvailableQuantity relies on single-document atomicity: the
// filter only matches while the stored quantity still equals expected.
func (r *ProductRepository) CompareAndSetAvailableQuantity(ctx context.Context, id string, expected, quantity int) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "available_quantity": expected},
		bson.M{"$set": bson.M{"available_quantity": quantity}},
	)
	if err != nil {
		return false, fmt.Errorf("swap quantity: %w", err)
	}
	return res.MatchedCount == 1, nil
}
