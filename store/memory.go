package store

import (
	"context"
	"fmt"
	"sync"

	"MediFind/models"
	"MediFind/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process memory, in insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	collection string
	docs       []models.Medicine
}

func NewMemoryStore(collection string, seed ...models.Medicine) *MemoryStore {
	s := &MemoryStore{collection: collection}
	for _, med := range seed {
		med := med
		_ = s.Insert(context.Background(), &med)
	}
	return s
}

func (s *MemoryStore) Find(ctx context.Context, filter query.Filter) ([]models.Medicine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	match, err := filter.Matcher()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Medicine, 0)
	for i := range s.docs {
		if match(s.docs[i].Field) {
			out = append(out, s.docs[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) FindOne(ctx context.Context, filter query.Filter) (*models.Medicine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	match, err := filter.Matcher()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.docs {
		if match(s.docs[i].Field) {
			med := s.docs[i]
			return &med, nil
		}
	}
	return nil, ErrNoDocument
}

func (s *MemoryStore) Insert(ctx context.Context, med *models.Medicine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID == med.ID {
			return fmt.Errorf("store: duplicate _id %s", med.ID.Hex())
		}
	}
	s.docs = append(s.docs, *med)
	return nil
}

func (s *MemoryStore) FindRaw(ctx context.Context, filter query.Filter) ([]bson.M, error) {
	meds, err := s.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]bson.M, 0, len(meds))
	for _, med := range meds {
		raw, err := bson.Marshal(med)
		if err != nil {
			return nil, err
		}
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *MemoryStore) Describe(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Collection: s.collection, Exists: true, Documents: int64(len(s.docs))}, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
