package migrations

import (
	"context"
	"testing"

	"MediFind/logger"
	"MediFind/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestBackfillTextDefaults(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sums modified counts", func(mt *mtest.T) {
		for i := range models.TextFields {
			modified := int32(0)
			if i%2 == 0 {
				modified = 2
			}
			mt.AddMockResponses(mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: modified},
				bson.E{Key: "nModified", Value: modified},
			))
		}

		total, err := BackfillTextDefaults(context.Background(), mt.Coll, logger.Nop())
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
	})

	mt.Run("stops on first failure", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}),
		)

		total, err := BackfillTextDefaults(context.Background(), mt.Coll, logger.Nop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), models.FieldProductName)
		assert.Equal(t, int64(1), total)
	})
}
