package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"routeplanner/internal/platform/logging"
)

// NewRouter wires the §6 inbound surface onto a Gin engine, grounded on
// the teacher's route-group setup in route_api_integration_test.go's
// setupAPIRouter.
func NewRouter(logger *slog.Logger, routes *RoutesHandler, visited *VisitedHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.StructuredLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	group := r.Group("/routes")
	{
		group.POST("/search", routes.PostSearchRoutes)
		group.POST("/substitute", routes.PostReplacePOI)
		group.POST("/substitute/confirm", routes.PostConfirmReplace)
		group.POST("/replace", routes.PostReplaceFullRoute)
	}

	r.GET("/users/:id/visited", visited.GetVisited)

	return r
}
