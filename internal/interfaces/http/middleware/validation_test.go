package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type governorateRequest struct {
	Governorate string `json:"governorate" binding:"required,governorate"`
}

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	router := gin.New()
	router.POST("/quote", func(c *gin.Context) {
		var req governorateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"governorate": req.Governorate})
	})
	return router
}

func TestGovernorateValidation(t *testing.T) {
	t.Run("known governorate passes", func(t *testing.T) {
		router := newValidationRouter()

		req := httptest.NewRequest("POST", "/quote", strings.NewReader(`{"governorate":"baghdad"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("case is normalized before checking", func(t *testing.T) {
		router := newValidationRouter()

		req := httptest.NewRequest("POST", "/quote", strings.NewReader(`{"governorate":"Basra"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown governorate is rejected", func(t *testing.T) {
		router := newValidationRouter()

		req := httptest.NewRequest("POST", "/quote", strings.NewReader(`{"governorate":"atlantis"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing governorate is rejected", func(t *testing.T) {
		router := newValidationRouter()

		req := httptest.NewRequest("POST", "/quote", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
