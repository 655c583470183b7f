package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MediFind/models"
	"MediFind/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	// QueryTimeout bounds every store call; 0 leaves calls bounded only by
	// the caller's context.
	QueryTimeout time.Duration
}

// MongoStore reads and writes the medicines collection of a MongoDB
// deployment.
type MongoStore struct {
	client       *mongo.Client
	coll         *mongo.Collection
	queryTimeout time.Duration
}

// NewMongoStore connects and pings the deployment once.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:       client,
		coll:         client.Database(cfg.Database).Collection(cfg.Collection),
		queryTimeout: cfg.QueryTimeout,
	}, nil
}

// NewMongoStoreFromCollection wraps an existing collection handle. Close does
// not disconnect the client it belongs to.
func NewMongoStoreFromCollection(coll *mongo.Collection, queryTimeout time.Duration) *MongoStore {
	return &MongoStore{coll: coll, queryTimeout: queryTimeout}
}

func (s *MongoStore) Collection() *mongo.Collection {
	return s.coll
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *MongoStore) Find(ctx context.Context, filter query.Filter) ([]models.Medicine, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]models.Medicine, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Medicine{}
	}
	return out, nil
}

func (s *MongoStore) FindOne(ctx context.Context, filter query.Filter) (*models.Medicine, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var med models.Medicine
	err := s.coll.FindOne(ctx, filter.BSON()).Decode(&med)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *MongoStore) Insert(ctx context.Context, med *models.Medicine) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	assigned := med.ID.IsZero()
	if assigned {
		med.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, med); err != nil {
		if assigned {
			med.ID = primitive.NilObjectID
		}
		return err
	}
	return nil
}

func (s *MongoStore) FindRaw(ctx context.Context, filter query.Filter) ([]bson.M, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter.BSON())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]bson.M, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []bson.M{}
	}
	return out, nil
}

// Describe reports whether the collection exists and its estimated size.
func (s *MongoStore) Describe(ctx context.Context) (Stats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stats := Stats{Collection: s.coll.Name()}
	names, err := s.coll.Database().ListCollectionNames(ctx, bson.M{"name": s.coll.Name()})
	if err != nil {
		return stats, err
	}
	stats.Exists = len(names) > 0
	if !stats.Exists {
		return stats, nil
	}
	stats.Documents, err = s.coll.EstimatedDocumentCount(ctx)
	return stats, err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
