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
	"golang.org/x/crypto/bcrypt"

	"github.com/nolivos/client-registry/internal/core/domain"
)

const collectionUsers = "users"

// IdentityRepository verifies credentials stored as bcrypt hashes in the
// users collection.
type IdentityRepository struct {
	coll *mongo.Collection
	cost int
}

// NewIdentityRepository uses bcrypt.DefaultCost when cost is out of range.
func NewIdentityRepository(db *mongo.Database, cost int) *IdentityRepository {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &IdentityRepository{coll: db.Collection(collectionUsers), cost: cost}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	DisplayName  string             `bson:"display_name"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *IdentityRepository) Verify(ctx context.Context, username, password string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(mu.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	cred := domain.Credential{Username: mu.Username, DisplayName: mu.DisplayName}
	return &domain.Identity{Username: mu.Username, DisplayName: cred.Name()}, nil
}

// Seed upserts the given credentials, re-hashing every password.
func (r *IdentityRepository) Seed(ctx context.Context, creds []domain.Credential) error {
	now := time.Now().UTC().Unix()
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), r.cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", c.Username, err)
		}

		_, err = r.coll.UpdateOne(ctx,
			bson.M{"username": c.Username},
			bson.M{
				"$set": bson.M{
					"password_hash": string(hash),
					"display_name":  c.Name(),
					"updated_at":    now,
				},
				"$setOnInsert": bson.M{"created_at": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("upsert user %s: %w", c.Username, err)
		}
	}
	return nil
}

// EnsureIndexes makes usernames unique.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
