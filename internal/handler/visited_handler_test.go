package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubVisitedStore struct {
	ids []string
	err error
}

func (s stubVisitedStore) GetVisited(ctx context.Context, userID string) ([]string, error) {
	return s.ids, s.err
}

func TestVisitedHandler_GetVisited(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewVisitedHandler(stubVisitedStore{ids: []string{"poi_1", "poi_2"}})
	r := gin.New()
	r.GET("/users/:id/visited", h.GetVisited)

	req := httptest.NewRequest(http.MethodGet, "/users/user_1/visited", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "poi_1") || !strings.Contains(w.Body.String(), "poi_2") {
		t.Errorf("body %q missing expected poi ids", w.Body.String())
	}
}

func TestVisitedHandler_UpstreamErrorIsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewVisitedHandler(stubVisitedStore{err: fmt.Errorf("postgres: connection refused")})
	r := gin.New()
	r.GET("/users/:id/visited", h.GetVisited)

	req := httptest.NewRequest(http.MethodGet, "/users/user_1/visited", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
