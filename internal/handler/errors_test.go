package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"routeplanner/internal/domain/apperr"
)

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"input", apperr.Input("lat", "out of range"), http.StatusBadRequest, "invalid_request"},
		{"cache_miss", apperr.CacheMiss("route_id", "3"), http.StatusNotFound, "cache_miss"},
		{"exhausted", apperr.Exhausted("category_filter", ""), http.StatusUnprocessableEntity, "exhausted"},
		{"conflict", apperr.Conflict("3", "poi_1"), http.StatusConflict, "conflict"},
		{"upstream", apperr.Upstream("postgres", errors.New("timeout")), http.StatusBadGateway, "upstream_error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tc.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Errorf("body %q does not contain %q", w.Body.String(), tc.wantBody)
			}
		})
	}
}
