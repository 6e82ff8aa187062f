package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"socialgram-api/config"
	"socialgram-api/models"
	"socialgram-api/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.FriendRequest{},
		&models.Post{},
		&models.PostLike{},
	))

	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		JWTSecret:     "test-secret-key",
		StorageDriver: "local",
		UploadDir:     t.TempDir(),
		BaseURL:       "http://localhost:8080",
		MaxUploadSize: 5 * 1024 * 1024,
	}
}

func testStorage(t *testing.T, cfg *config.Config) services.FileStorage {
	t.Helper()

	storage, err := services.NewLocalStorage(cfg.UploadDir)
	require.NoError(t, err)
	return storage
}

// testIdentity injects the caller id from the X-Test-User header, standing in
// for the JWT middleware.
func testIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$dummy",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func befriend(t *testing.T, db *gorm.DB, a, b models.User) {
	t.Helper()

	require.NoError(t, db.Create(&models.Friendship{UserID: a.ID, FriendID: b.ID}).Error)
	require.NoError(t, db.Create(&models.Friendship{UserID: b.ID, FriendID: a.ID}).Error)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, asUser string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if asUser != "" {
		req.Header.Set("X-Test-User", asUser)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
