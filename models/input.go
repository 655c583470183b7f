package models

// MedicineInput is the body accepted by the insert operation. Fields the
// struct does not name are dropped during decoding.
type MedicineInput struct {
	SubCategory         Text `json:"sub_category"`
	ProductName         Text `json:"product_name"`
	SaltComposition     Text `json:"salt_composition"`
	ProductPrice        Text `json:"product_price"`
	ProductManufactured Text `json:"product_manufactured"`
	MedicineDesc        Text `json:"medicine_desc"`
	SideEffects         Text `json:"side_effects"`
	DrugInteractions    Text `json:"drug_interactions"`
}

// Medicine converts the input into a document without an ID.
func (in MedicineInput) Medicine() Medicine {
	return Medicine{
		SubCategory:         string(in.SubCategory),
		ProductName:         string(in.ProductName),
		SaltComposition:     string(in.SaltComposition),
		ProductPrice:        string(in.ProductPrice),
		ProductManufactured: string(in.ProductManufactured),
		MedicineDesc:        string(in.MedicineDesc),
		SideEffects:         string(in.SideEffects),
		DrugInteractions:    string(in.DrugInteractions),
	}
}
