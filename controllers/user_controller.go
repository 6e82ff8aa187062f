package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"socialgram-api/models"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// SearchUsers matches the query case-insensitively against username or email.
func (uc *UserController) SearchUsers(c *gin.Context) {
	query := strings.ToLower(c.Query("q"))
	pattern := "%" + query + "%"

	var users []models.User
	if err := uc.db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}

	c.JSON(http.StatusOK, profiles)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}
