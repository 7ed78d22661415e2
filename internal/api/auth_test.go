package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/backend/internal/types"
)

func TestRegisterEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("valid registration", func(t *testing.T) {
		token := registerUser(t, router, "marco@example.com", "chefmarco")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
			Name:     "Marco Again",
			Email:    "marco@example.com",
			Username: "marco2",
			Password: "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password rejected at binding", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
			Name:     "Shorty",
			Email:    "short@example.com",
			Username: "shorty",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	registerUser(t, router, "marco@example.com", "chefmarco")

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
			Email:    "marco@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{
			Email:    "marco@example.com",
			Password: "wrongpass123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerUser(t, router, "marco@example.com", "chefmarco")

	t.Run("requires authentication", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("get own profile", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "chefmarco", body["username"])
	})

	t.Run("partial update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
			"fullName":   "Marco Rossi",
			"skillLevel": "advanced",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Marco Rossi", body["full_name"])
		assert.Equal(t, "chefmarco", body["username"])
	})

	t.Run("invalid skill level rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/v1/profile", token, map[string]interface{}{
			"skillLevel": "wizard",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
