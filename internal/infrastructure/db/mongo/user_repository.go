package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seatech/storefront-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	Name      string             `bson:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Location  string             `bson:"location,omitempty"`
	Education string             `bson:"education,omitempty"`
	LinkedIn  string             `bson:"linkedin,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Role:      domain.Role(d.Role),
		Name:      d.Name,
		Phone:     d.Phone,
		Location:  d.Location,
		Education: d.Education,
		LinkedIn:  d.LinkedIn,
		PhotoURL:  d.PhotoURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// Upsert sets the non-empty profile fields and, on insert only, the
// customer role. Two concurrent first logins race on the unique email
// index; the loser retries as an update.
func (r *UserRepository) Upsert(ctx context.Context, email string, p domain.Profile) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	for field, value := range map[string]string{
		"name":      p.Name,
		"phone":     p.Phone,
		"location":  p.Location,
		"education": p.Education,
		"linkedin":  p.LinkedIn,
		"photo_url": p.PhotoURL,
	} {
		if value != "" {
			set[field] = value
		}
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"role": string(domain.RoleCustomer), "created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userDocument
	err := r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) SetRole(ctx context.Context, email string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": string(role), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteNonAdmin filters on the role so an admin is never deleted, even if
// it was promoted after the caller last read it.
func (r *UserRepository) DeleteNonAdmin(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{
		"email": email,
		"role":  bson.M{"$ne": string(domain.RoleAdmin)},
	})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes makes email the unique natural key.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
