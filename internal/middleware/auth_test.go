package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/forkful/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func runAuthMiddleware(validator TokenValidator, header string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	var captured *gin.Context

	router := gin.New()
	router.GET("/", AuthMiddleware(validator), func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)

	return w, captured
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	valid := &stubValidator{claims: &types.TokenClaims{UserID: userID, Username: "chefmarco"}}

	t.Run("missing header", func(t *testing.T) {
		w, _ := runAuthMiddleware(valid, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w, _ := runAuthMiddleware(valid, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		w, _ := runAuthMiddleware(&stubValidator{err: errors.New("invalid token")}, "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token injects claims", func(t *testing.T) {
		w, c := runAuthMiddleware(valid, "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)

		got, exists := c.Get("user_id")
		assert.True(t, exists)
		assert.Equal(t, userID, got)

		username, _ := c.Get("username")
		assert.Equal(t, "chefmarco", username)
	})
}
