package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAdminRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuth(token))
	router.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAdminAuth(t *testing.T) {
	t.Run("correct token passes", func(t *testing.T) {
		router := newAdminRouter("s3cret")

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AdminTokenHeader, "s3cret")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		router := newAdminRouter("s3cret")

		req := httptest.NewRequest("GET", "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_ADMIN_TOKEN")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		router := newAdminRouter("s3cret")

		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set(AdminTokenHeader, "guess")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
