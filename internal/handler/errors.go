// Package handler implements the §6 inbound request surface (Gin),
// grounded on the teacher's route_proposal_handler.go: bind JSON, validate,
// call into the use-case/orchestrator layer, map the result to a JSON
// response. Generalized per SPEC_FULL.md §7 to inspect errors with
// errors.As against internal/domain/apperr's typed errors instead of the
// teacher's strings.Contains(err.Error(), "...") matching.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"routeplanner/internal/domain/apperr"
)

// writeError maps an apperr-taxonomy error to an HTTP status and a
// {"error", "message"} body, the teacher's gin.H error shape.
func writeError(c *gin.Context, err error) {
	var inputErr *apperr.InputError
	var cacheMissErr *apperr.CacheMissError
	var exhaustedErr *apperr.ExhaustionError
	var conflictErr *apperr.ConflictError
	var upstreamErr *apperr.UpstreamError

	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": inputErr.Error()})
	case errors.As(err, &cacheMissErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "cache_miss", "message": cacheMissErr.Error()})
	case errors.As(err, &exhaustedErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "exhausted", "message": exhaustedErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": conflictErr.Error()})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "message": upstreamErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
	}
}
