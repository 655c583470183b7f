// Package store is the document store adapter for the medicines collection.
package store

import (
	"context"
	"errors"

	"MediFind/models"
	"MediFind/query"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNoDocument is returned by FindOne when nothing matches.
var ErrNoDocument = errors.New("store: no document matches the filter")

// Stats describes the backing collection.
type Stats struct {
	Collection string
	Exists     bool
	Documents  int64
}

// Store is safe for concurrent use.
type Store interface {
	Find(ctx context.Context, filter query.Filter) ([]models.Medicine, error)
	FindOne(ctx context.Context, filter query.Filter) (*models.Medicine, error)
	// Insert stores med and sets its ID.
	Insert(ctx context.Context, med *models.Medicine) error
	// FindRaw returns documents as stored, without schema mapping.
	FindRaw(ctx context.Context, filter query.Filter) ([]bson.M, error)
	Describe(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// AsMongo returns the MongoStore behind st, looking through Instrument.
func AsMongo(st Store) (*MongoStore, bool) {
	for {
		switch v := st.(type) {
		case *MongoStore:
			return v, true
		case interface{ Unwrap() Store }:
			st = v.Unwrap()
		default:
			return nil, false
		}
	}
}
