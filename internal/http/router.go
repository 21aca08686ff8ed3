// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freight/internal/http/handlers"
	"freight/internal/http/middleware"
	"freight/internal/metrics"
)

type RouterDeps struct {
	Hubs           handlers.HubRegistry
	Rates          handlers.RateLookup
	Batch          handlers.BatchRunner
	UploadMaxBytes int64
	Logger         *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logging(logger), middleware.CORS())

	api := r.Group("/api")

	hubHandler := handlers.NewHubHandler(deps.Hubs)
	api.POST("/hubs", hubHandler.Register)
	api.GET("/hubs", hubHandler.List)

	rateHandler := handlers.NewRateHandler(deps.Rates)
	api.POST("/rates", rateHandler.Lookup)
	api.GET("/rates", rateHandler.Get)

	batchHandler := handlers.NewBatchHandler(deps.Batch, deps.UploadMaxBytes)
	api.POST("/rates/batch", batchHandler.Run)
	api.POST("/rates/upload-xlsx", batchHandler.UploadXLSX)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
