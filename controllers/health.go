package controllers

import (
	"net/http"

	"MediFind/logger"
	"MediFind/store"
	"MediFind/util"

	"github.com/gin-gonic/gin"
)

func Health(router *gin.Engine, st store.Store, log *logger.Logger) {
	router.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			log.Warn("store ping failed", err, nil)
			c.JSON(http.StatusServiceUnavailable, util.HealthResponse{Status: util.STORE_UNAVAILABLE})
			return
		}
		c.JSON(http.StatusOK, util.HealthResponse{Status: util.STORE_AVAILABLE})
	})
}
