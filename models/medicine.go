package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names as stored in the collection.
const (
	FieldSubCategory         = "sub_category"
	FieldProductName         = "product_name"
	FieldSaltComposition     = "salt_composition"
	FieldProductPrice        = "product_price"
	FieldProductManufactured = "product_manufactured"
	FieldMedicineDesc        = "medicine_desc"
	FieldSideEffects         = "side_effects"
	FieldDrugInteractions    = "drug_interactions"
)

// TextFields lists every text field of a Medicine in schema order.
var TextFields = []string{
	FieldSubCategory,
	FieldProductName,
	FieldSaltComposition,
	FieldProductPrice,
	FieldProductManufactured,
	FieldMedicineDesc,
	FieldSideEffects,
	FieldDrugInteractions,
}

// SearchFields are the fields the free-text searches look at.
var SearchFields = []string{
	FieldProductName,
	FieldSubCategory,
	FieldSaltComposition,
	FieldMedicineDesc,
}

// Medicine is a stored document. Missing fields decode as "".
type Medicine struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	SubCategory         string             `json:"sub_category" bson:"sub_category"`
	ProductName         string             `json:"product_name" bson:"product_name"`
	SaltComposition     string             `json:"salt_composition" bson:"salt_composition"`
	ProductPrice        string             `json:"product_price" bson:"product_price"`
	ProductManufactured string             `json:"product_manufactured" bson:"product_manufactured"`
	MedicineDesc        string             `json:"medicine_desc" bson:"medicine_desc"`
	SideEffects         string             `json:"side_effects" bson:"side_effects"`
	DrugInteractions    string             `json:"drug_interactions" bson:"drug_interactions"`
}

// storedMedicine is the decoding shape of a document.
type storedMedicine struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	SubCategory         Text               `bson:"sub_category"`
	ProductName         Text               `bson:"product_name"`
	SaltComposition     Text               `bson:"salt_composition"`
	ProductPrice        Text               `bson:"product_price"`
	ProductManufactured Text               `bson:"product_manufactured"`
	MedicineDesc        Text               `bson:"medicine_desc"`
	SideEffects         Text               `bson:"side_effects"`
	DrugInteractions    Text               `bson:"drug_interactions"`
}

// UnmarshalBSON decodes a stored document. Numbers and booleans held in text
// fields come back as their literal text.
func (m *Medicine) UnmarshalBSON(data []byte) error {
	var doc storedMedicine
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*m = Medicine{
		ID:                  doc.ID,
		SubCategory:         string(doc.SubCategory),
		ProductName:         string(doc.ProductName),
		SaltComposition:     string(doc.SaltComposition),
		ProductPrice:        string(doc.ProductPrice),
		ProductManufactured: string(doc.ProductManufactured),
		MedicineDesc:        string(doc.MedicineDesc),
		SideEffects:         string(doc.SideEffects),
		DrugInteractions:    string(doc.DrugInteractions),
	}
	return nil
}

// Field returns the value of the named text field, "" for unknown names.
func (m *Medicine) Field(name string) string {
	switch name {
	case FieldSubCategory:
		return m.SubCategory
	case FieldProductName:
		return m.ProductName
	case FieldSaltComposition:
		return m.SaltComposition
	case FieldProductPrice:
		return m.ProductPrice
	case FieldProductManufactured:
		return m.ProductManufactured
	case FieldMedicineDesc:
		return m.MedicineDesc
	case FieldSideEffects:
		return m.SideEffects
	case FieldDrugInteractions:
		return m.DrugInteractions
	}
	return ""
}
