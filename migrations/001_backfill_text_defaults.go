package migrations

import (
	"context"
	"fmt"

	"MediFind/logger"
	"MediFind/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BackfillTextDefaults sets every missing text field to "" so stored
// documents agree with what the API returns for them. It is idempotent.
func BackfillTextDefaults(ctx context.Context, coll *mongo.Collection, log *logger.Logger) (int64, error) {
	var total int64
	for _, field := range models.TextFields {
		result, err := coll.UpdateMany(ctx,
			bson.M{field: bson.M{"$exists": false}},
			bson.M{"$set": bson.M{field: ""}},
		)
		if err != nil {
			return total, fmt.Errorf("backfill %s: %w", field, err)
		}
		if result.ModifiedCount > 0 {
			log.Info("Migration applied", nil, map[string]interface{}{
				"field":    field,
				"modified": result.ModifiedCount,
			})
		}
		total += result.ModifiedCount
	}
	return total, nil
}
