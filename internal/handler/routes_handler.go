package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"routeplanner/internal/domain/model"
	"routeplanner/internal/domain/planner"
	"routeplanner/internal/domain/substitution"
)

// RoutesHandler implements the C10 inbound surface: search_routes,
// replace_poi, confirm_replace, replace_full_route.
type RoutesHandler struct {
	orchestrator *planner.Orchestrator
	substitution *substitution.Service
}

func NewRoutesHandler(orchestrator *planner.Orchestrator, substitution *substitution.Service) *RoutesHandler {
	return &RoutesHandler{orchestrator: orchestrator, substitution: substitution}
}

// PostSearchRoutes handles POST /routes/search (search_routes).
func (h *RoutesHandler) PostSearchRoutes(c *gin.Context) {
	var req model.SearchRoutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.orchestrator.SearchRoutes(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostReplacePOI handles POST /routes/substitute (replace_poi).
func (h *RoutesHandler) PostReplacePOI(c *gin.Context) {
	var req model.ReplacePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.substitution.ReplacePOI(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostConfirmReplace handles POST /routes/substitute/confirm (confirm_replace).
func (h *RoutesHandler) PostConfirmReplace(c *gin.Context) {
	var req model.ConfirmReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.substitution.ConfirmReplace(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PostReplaceFullRoute handles POST /routes/replace (replace_full_route).
func (h *RoutesHandler) PostReplaceFullRoute(c *gin.Context) {
	var req model.ReplaceFullRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	resp, err := h.orchestrator.ReplaceFullRoute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
