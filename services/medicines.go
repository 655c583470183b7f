package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"MediFind/logger"
	"MediFind/models"
	"MediFind/query"
	"MediFind/store"
	"MediFind/util"

	"go.mongodb.org/mongo-driver/bson"
)

type MedicineService struct {
	store store.Store
	log   *logger.Logger
}

func NewMedicineService(st store.Store, log *logger.Logger) *MedicineService {
	return &MedicineService{store: st, log: log}
}

// required trims text and rejects it when nothing is left or when it is not
// valid UTF-8.
func required(param, text, message string) (string, error) {
	if !utf8.ValidString(text) {
		return "", &ValidationError{Param: param, Message: util.INVALID_QUERY_ENCODING}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{Param: param, Message: message}
	}
	return text, nil
}

func (s *MedicineService) storeFailure(op, message string, err error, fields map[string]interface{}) error {
	s.log.Error("store call failed", err, map[string]interface{}{"op": op}, fields)
	return &StoreError{Op: op, Message: message, Err: err}
}

// ListAll returns every medicine. An empty collection is not an error.
func (s *MedicineService) ListAll(ctx context.Context) ([]models.Medicine, error) {
	meds, err := s.store.Find(ctx, query.All())
	if err != nil {
		return nil, s.storeFailure("list_all", util.ERROR_FETCHING_MEDICINES, err, nil)
	}
	return meds, nil
}

/*
* Reject a blank name
* Match product_name as a case-insensitive substring
* Return the first match only
 */
func (s *MedicineService) FindByName(ctx context.Context, name string) (*models.Medicine, error) {
	name, err := required("name", name, util.MISSING_REQUIRED_NAME)
	if err != nil {
		return nil, err
	}
	med, err := s.store.FindOne(ctx, query.SingleField(models.FieldProductName, name))
	if errors.Is(err, store.ErrNoDocument) {
		return nil, &NotFoundError{Message: util.MEDICINE_NOT_FOUND}
	}
	if err != nil {
		return nil, s.storeFailure("find_by_name", util.SERVER_ERROR, err, map[string]interface{}{"name": name})
	}
	return med, nil
}

func (s *MedicineService) SearchByName(ctx context.Context, name string) ([]models.Medicine, error) {
	name, err := required("name", name, util.MISSING_NAME_PARAMETER)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "search_by_name", query.SingleField(models.FieldProductName, name), util.NO_MEDICINES_FOR_NAME, name)
}

func (s *MedicineService) SearchByCategory(ctx context.Context, subCategory string) ([]models.Medicine, error) {
	subCategory, err := required("sub_category", subCategory, util.MISSING_SUB_CATEGORY_PARAMETER)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "search_by_category", query.SingleField(models.FieldSubCategory, subCategory), util.NO_MEDICINES_FOR_SUB_CATEGORY, subCategory)
}

// SmartSearch matches text literally against any of the search fields.
func (s *MedicineService) SmartSearch(ctx context.Context, text string) ([]models.Medicine, error) {
	text, err := required("query", text, util.MISSING_QUERY_PARAMETER)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "smart_search", query.MultiField(models.SearchFields, text), util.NO_MATCHES_FOUND, text)
}

/*
* Reject a blank query
* Escape the text and let whitespace runs match any whitespace
* OR the pattern over product_name, sub_category, salt_composition, medicine_desc
* An empty result is a not found, not a failure
 */
func (s *MedicineService) FlexibleSearch(ctx context.Context, raw string) ([]models.Medicine, error) {
	text, err := required("query", raw, util.MISSING_QUERY_PARAMETER)
	if err != nil {
		s.log.Debug("flexible search rejected", nil, map[string]interface{}{"raw_query": raw})
		return nil, err
	}
	filter := query.EscapedFlexible(models.SearchFields, text)
	s.log.Debug("flexible search filter", nil, map[string]interface{}{
		"query":   text,
		"pattern": query.Flexible(text).String(),
	})
	meds, err := s.search(ctx, "flexible_search", filter, util.NO_MATCHES_FOUND, text)
	if err != nil {
		return nil, err
	}
	s.log.Debug("flexible search matched", nil, map[string]interface{}{
		"query":       text,
		"count":       len(meds),
		"first_match": meds[0].ProductName,
	})
	return meds, nil
}

func (s *MedicineService) search(ctx context.Context, op string, filter query.Filter, notFound, text string) ([]models.Medicine, error) {
	meds, err := s.store.Find(ctx, filter)
	if err != nil {
		return nil, s.storeFailure(op, util.SERVER_ERROR, err, map[string]interface{}{"query": text})
	}
	if len(meds) == 0 {
		s.log.Debug("no matches", nil, map[string]interface{}{"op": op, "query": text})
		return nil, &NotFoundError{Message: notFound}
	}
	s.log.Debug("matches found", nil, map[string]interface{}{"op": op, "query": text, "count": len(meds)})
	return meds, nil
}

// AddMedicine stores the input as a new document. Unset fields are stored
// as "".
func (s *MedicineService) AddMedicine(ctx context.Context, in models.MedicineInput) (*models.Medicine, error) {
	med := in.Medicine()
	if err := s.store.Insert(ctx, &med); err != nil {
		return nil, s.storeFailure("add_medicine", util.ERROR_ADDING_MEDICINE, err, nil)
	}
	s.log.Info("medicine added", nil, map[string]interface{}{
		"id":           med.ID.Hex(),
		"product_name": med.ProductName,
	})
	return &med, nil
}

// RawDocuments returns the whole collection as stored.
func (s *MedicineService) RawDocuments(ctx context.Context) ([]bson.M, error) {
	docs, err := s.store.FindRaw(ctx, query.All())
	if err != nil {
		return nil, s.storeFailure("raw_documents", util.SERVER_ERROR, err, nil)
	}
	s.log.Debug("raw documents read", nil, map[string]interface{}{"count": len(docs)})
	return docs, nil
}

// InsulinProbe runs a fixed product_name query as an end-to-end check of the
// mapping layer. No match is a valid answer.
func (s *MedicineService) InsulinProbe(ctx context.Context) ([]models.Medicine, error) {
	meds, err := s.store.Find(ctx, query.SingleField(models.FieldProductName, util.InsulinProbeName))
	if err != nil {
		return nil, s.storeFailure("insulin_probe", util.SERVER_ERROR, err, nil)
	}
	s.log.Debug("probe query ran", nil, map[string]interface{}{"count": len(meds)})
	return meds, nil
}
