package controllers

import (
	"errors"
	"io"
	"net/http"

	"MediFind/logger"
	"MediFind/models"
	"MediFind/services"
	"MediFind/util"

	"github.com/gin-gonic/gin"
)

type MedicineController struct {
	svc *services.MedicineService
	log *logger.Logger
}

func NewMedicineController(svc *services.MedicineService, log *logger.Logger) *MedicineController {
	return &MedicineController{svc: svc, log: log}
}

func Medicines(router *gin.Engine, ctl *MedicineController) {
	medicines := router.Group("/api/medicines")
	{
		medicines.GET("/", ctl.ListMedicines)
		medicines.POST("/", ctl.AddMedicine)
		medicines.GET("/name", ctl.FindMedicineByName)
		medicines.GET("/search", ctl.SearchMedicines)
		medicines.GET("/search/name", ctl.SearchByName)
		medicines.GET("/search/category", ctl.SearchByCategory)
		medicines.GET("/smart-search", ctl.SmartSearch)
		medicines.GET("/debug/all", ctl.DebugAll)
		medicines.GET("/debug/test", ctl.DebugTest)
	}
}

// fail writes the reply for an error returned by the service. Store
// failures keep their cause on the gin context for the request logger and
// never in the body.
func (ctl *MedicineController) fail(c *gin.Context, err error) {
	var vErr *services.ValidationError
	var nfErr *services.NotFoundError
	var sErr *services.StoreError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, util.FailedResponse(vErr.Message))
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, util.FailedResponse(nfErr.Message))
	case errors.As(err, &sErr):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, util.ServerErrorResponse(sErr.Message))
	default:
		_ = c.Error(err)
		ctl.log.Error("unexpected service error", err, map[string]interface{}{"path": c.Request.URL.Path})
		c.JSON(http.StatusInternalServerError, util.ServerErrorResponse(util.SERVER_ERROR))
	}
}

func (ctl *MedicineController) ListMedicines(c *gin.Context) {
	meds, err := ctl.svc.ListAll(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

// AddMedicine accepts any JSON object; fields outside the medicine schema
// are dropped and an empty body creates an empty document.
func (ctl *MedicineController) AddMedicine(c *gin.Context) {
	var in models.MedicineInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		ctl.log.Warn("rejected medicine body", err, nil)
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.INVALID_REQUEST_BODY))
		return
	}
	med, err := ctl.svc.AddMedicine(c.Request.Context(), in)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.CreatedResponse{
		Message: util.MEDICINE_ADDED_SUCCESSFULLY,
		Data:    med,
	})
}

func (ctl *MedicineController) FindMedicineByName(c *gin.Context) {
	med, err := ctl.svc.FindByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, med)
}

// SearchMedicines is the whitespace tolerant search across all search
// fields.
func (ctl *MedicineController) SearchMedicines(c *gin.Context) {
	meds, err := ctl.svc.FlexibleSearch(c.Request.Context(), c.Query("query"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SearchResponse{
		Success: true,
		Count:   len(meds),
		Data:    meds,
	})
}

func (ctl *MedicineController) SearchByName(c *gin.Context) {
	meds, err := ctl.svc.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

func (ctl *MedicineController) SearchByCategory(c *gin.Context) {
	meds, err := ctl.svc.SearchByCategory(c.Request.Context(), c.Query("sub_category"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

func (ctl *MedicineController) SmartSearch(c *gin.Context) {
	meds, err := ctl.svc.SmartSearch(c.Request.Context(), c.Query("query"))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meds)
}

func (ctl *MedicineController) DebugAll(c *gin.Context) {
	docs, err := ctl.svc.RawDocuments(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (ctl *MedicineController) DebugTest(c *gin.Context) {
	meds, err := ctl.svc.InsulinProbe(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.ProbeResponse{Count: len(meds), Docs: meds})
}
