package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMedicineDecodesScalarTextFields(t *testing.T) {
	price, err := primitive.ParseDecimal128("12.50")
	require.NoError(t, err)
	id := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: id},
		{Key: "product_name", Value: "Paracetamol"},
		{Key: "product_price", Value: price},
		{Key: "sub_category", Value: int32(3)},
		{Key: "salt_composition", Value: int64(500)},
		{Key: "medicine_desc", Value: true},
		{Key: "side_effects", Value: nil},
		{Key: "drug_interactions", Value: 2.5},
	})
	require.NoError(t, err)

	var med Medicine
	require.NoError(t, bson.Unmarshal(raw, &med))
	assert.Equal(t, id, med.ID)
	assert.Equal(t, "Paracetamol", med.ProductName)
	assert.Equal(t, "12.50", med.ProductPrice)
	assert.Equal(t, "3", med.SubCategory)
	assert.Equal(t, "500", med.SaltComposition)
	assert.Equal(t, "true", med.MedicineDesc)
	assert.Equal(t, "", med.SideEffects)
	assert.Equal(t, "2.5", med.DrugInteractions)
	assert.Equal(t, "", med.ProductManufactured)
}

func TestMedicineRejectsDocumentsInTextFields(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "product_name", Value: bson.D{{Key: "en", Value: "x"}}}})
	require.NoError(t, err)

	var med Medicine
	assert.Error(t, bson.Unmarshal(raw, &med))
}

func TestMedicineRoundTripsThroughBSON(t *testing.T) {
	in := Medicine{ID: primitive.NewObjectID(), ProductName: "Insulin Pen", ProductPrice: "120"}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Medicine
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
