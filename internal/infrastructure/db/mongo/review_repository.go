package mongo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seatech/storefront-api/internal/core/domain"
)

const collectionReviews = "reviews"

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"user_email"`
	Name      string             `bson:"name"`
	Rating    float64            `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d reviewDocument) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		UserEmail: d.UserEmail,
		Name:      d.Name,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
}

func (r *ReviewRepository) Latest(ctx context.Context, n int) ([]*domain.Review, error) {
	reviews, err := r.find(ctx, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(n)))
	if err != nil {
		return nil, err
	}
	slices.Reverse(reviews)
	return reviews, nil
}

func (r *ReviewRepository) find(ctx context.Context, opts *options.FindOptions) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := make([]*domain.Review, 0, len(docs))
	for _, d := range docs {
		reviews = append(reviews, d.toDomain())
	}
	return reviews, nil
}

// Create inserts a review and sets rv.ID.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, reviewDocument{
		UserEmail: rv.UserEmail,
		Name:      rv.Name,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid.Hex()
	}
	return nil
}

// EnsureIndexes creates the recency index used by Latest.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}
