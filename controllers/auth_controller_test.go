package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	ac := NewAuthController(db, "test-secret-key", nil)

	auth := router.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.POST("/logout", ac.Logout)
	}

	return router
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	register := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "sup3rSecret!",
	}

	t.Run("register", func(t *testing.T) {
		w := doRequest(t, router, "POST", "/auth/register", "", jsonBody(t, register), "application/json")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		decodeJSON(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
		assert.NotContains(t, w.Body.String(), "sup3rSecret!")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := doRequest(t, router, "POST", "/auth/register", "", jsonBody(t, register), "application/json")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login", func(t *testing.T) {
		login := map[string]string{"email": "alice@example.com", "password": "sup3rSecret!"}
		w := doRequest(t, router, "POST", "/auth/login", "", jsonBody(t, login), "application/json")
		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		decodeJSON(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		login := map[string]string{"email": "alice@example.com", "password": "nope"}
		w := doRequest(t, router, "POST", "/auth/login", "", jsonBody(t, login), "application/json")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		login := map[string]string{"email": "ghost@example.com", "password": "whatever"}
		w := doRequest(t, router, "POST", "/auth/login", "", jsonBody(t, login), "application/json")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, "POST", "/auth/register", "", jsonBody(t, map[string]string{"email": "x@example.com"}), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
