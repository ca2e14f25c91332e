package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nolivos/client-registry/internal/core/domain"
)

const (
	collectionClients  = "clients"
	collectionCounters = "counters"
	clientSequence     = "client_id"
)

// ClientRepository stores the registry in the clients collection. Identifiers
// come from an atomically incremented counter document; a failed insert hands
// its number back unless a concurrent create has already taken the next one.
type ClientRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{
		col:      db.Collection(collectionClients),
		counters: db.Collection(collectionCounters),
	}
}

type counterDoc struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// Create reserves the next sequence number and inserts the record.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var seq counterDoc
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": clientSequence},
		bson.M{"$inc": bson.M{"value": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&seq)
	if err != nil {
		return nil, fmt.Errorf("reserve client id: %w", err)
	}

	rec := *c
	rec.Seq = seq.Value
	rec.ID = domain.FormatClientID(seq.Value)

	if _, err := r.col.InsertOne(ctx, &rec); err != nil {
		if relErr := r.releaseSeq(ctx, seq.Value); relErr != nil {
			return nil, fmt.Errorf("insert client: %w (release id %d: %v)", err, seq.Value, relErr)
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &rec, nil
}

// releaseSeq rolls the counter back from seq to seq-1. It is a no-op when the
// counter has moved on.
func (r *ClientRepository) releaseSeq(ctx context.Context, seq int64) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
	defer cancel()

	_, err := r.counters.UpdateOne(ctx,
		bson.M{"_id": clientSequence, "value": seq},
		bson.M{"$inc": bson.M{"value": -1}},
	)
	return err
}

// List returns every client ordered by sequence.
func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer cur.Close(ctx)

	clients := make([]*domain.Client, 0)
	if err := cur.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) NextSeq(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var seq counterDoc
	err := r.counters.FindOne(ctx, bson.M{"_id": clientSequence}).Decode(&seq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, err
	}
	return seq.Value + 1, nil
}

// Stats counts documents; pending cases are not tracked.
func (r *ClientRepository) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count clients: %w", err)
	}
	active, err := r.col.CountDocuments(ctx, bson.M{"status": string(domain.ClientActive)})
	if err != nil {
		return domain.Stats{}, fmt.Errorf("count active clients: %w", err)
	}
	return domain.Stats{TotalClients: total, ActiveClients: active}, nil
}

// EnsureIndexes creates necessary indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
