package store

import (
	"context"
	"testing"

	"MediFind/models"
	"MediFind/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find decodes documents", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "product_name", Value: "Insulin Pen"}},
		))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		meds, err := st.Find(context.Background(), query.EscapedFlexible(models.SearchFields, "insulin"))
		require.NoError(t, err)
		require.Len(t, meds, 1)
		assert.Equal(t, id, meds[0].ID)
		assert.Equal(t, "Insulin Pen", meds[0].ProductName)
		assert.Equal(t, "", meds[0].SideEffects)
	})

	mt.Run("find casts scalar text fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "product_name", Value: "Paracetamol"}, {Key: "product_price", Value: 12.5}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "product_name", Value: "Insulin Pen"}, {Key: "product_price", Value: int32(120)}},
		))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		meds, err := st.Find(context.Background(), query.All())
		require.NoError(t, err)
		require.Len(t, meds, 2)
		assert.Equal(t, "12.5", meds[0].ProductPrice)
		assert.Equal(t, "120", meds[1].ProductPrice)
	})

	mt.Run("find one casts scalar text fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "product_name", Value: "Fepanil"}, {Key: "side_effects", Value: nil}, {Key: "product_price", Value: int64(40)}},
		))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		med, err := st.FindOne(context.Background(), query.SingleField(models.FieldProductName, "fepanil"))
		require.NoError(t, err)
		assert.Equal(t, "40", med.ProductPrice)
		assert.Equal(t, "", med.SideEffects)
	})

	mt.Run("find with no documents returns empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		meds, err := st.Find(context.Background(), query.All())
		require.NoError(t, err)
		assert.NotNil(t, meds)
		assert.Empty(t, meds)
	})

	mt.Run("find surfaces command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "Regular expression is invalid",
		}))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		_, err := st.Find(context.Background(), query.All())
		assert.Error(t, err)
	})

	mt.Run("find one miss maps to ErrNoDocument", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		_, err := st.FindOne(context.Background(), query.SingleField(models.FieldProductName, "aspirin"))
		assert.ErrorIs(t, err, ErrNoDocument)
	})

	mt.Run("find one returns first document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "product_name", Value: "Fepanil"}},
		))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		med, err := st.FindOne(context.Background(), query.SingleField(models.FieldProductName, "fepanil"))
		require.NoError(t, err)
		assert.Equal(t, "Fepanil", med.ProductName)
	})

	mt.Run("insert assigns an id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		med := models.Medicine{ProductName: "Test Drug"}
		require.NoError(t, st.Insert(context.Background(), &med))
		assert.False(t, med.ID.IsZero())
	})

	mt.Run("failed insert leaves id unset", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		med := models.Medicine{ProductName: "Test Drug"}
		assert.Error(t, st.Insert(context.Background(), &med))
		assert.True(t, med.ID.IsZero())
	})

	mt.Run("find raw keeps unmapped fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "product_name", Value: "Insulin Pen"}, {Key: "__v", Value: int32(0)}},
		))

		st := NewMongoStoreFromCollection(mt.Coll, 0)
		docs, err := st.FindRaw(context.Background(), query.All())
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, int32(0), docs[0]["__v"])
	})

	mt.Run("as mongo sees through instrumentation", func(mt *mtest.T) {
		st := NewMongoStoreFromCollection(mt.Coll, 0)

		got, ok := AsMongo(Instrument(st, "mongodb", nil))
		require.True(t, ok)
		assert.Same(t, st, got)

		_, ok = AsMongo(NewMemoryStore("medicineDB"))
		assert.False(t, ok)
	})
}
