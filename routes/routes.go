package routes

import (
	"MediFind/controllers"
	"MediFind/logger"
	"MediFind/metrics"
	"MediFind/services"
	"MediFind/store"

	"github.com/gin-gonic/gin"
)

// Routes registers the whole HTTP surface. m may be nil.
func Routes(r *gin.Engine, st store.Store, log *logger.Logger, m *metrics.Metrics) {
	controllers.Health(r, st, log)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	svc := services.NewMedicineService(st, log)
	controllers.Medicines(r, controllers.NewMedicineController(svc, log))
}
