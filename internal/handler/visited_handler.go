package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"routeplanner/internal/domain/repository"
)

// VisitedHandler implements the visited_pois inbound operation (§6,
// SUPPLEMENT per SPEC_FULL.md §6): a thin read-through, grounded on the
// teacher's WalksHandler shape.
type VisitedHandler struct {
	store repository.VisitedStore
}

func NewVisitedHandler(store repository.VisitedStore) *VisitedHandler {
	return &VisitedHandler{store: store}
}

// GetVisited handles GET /users/:id/visited.
func (h *VisitedHandler) GetVisited(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "user id is required"})
		return
	}

	ids, err := h.store.GetVisited(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"poi_ids": ids})
}
