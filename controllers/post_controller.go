package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"socialgram-api/config"
	"socialgram-api/models"
	"socialgram-api/services"
	"socialgram-api/utils"
)

type PostController struct {
	db      *gorm.DB
	storage services.FileStorage
	cfg     *config.Config
}

func NewPostController(db *gorm.DB, storage services.FileStorage, cfg *config.Config) *PostController {
	return &PostController{
		db:      db,
		storage: storage,
		cfg:     cfg,
	}
}

// CreatePost accepts a multipart form with an "image" file and an optional
// "caption" field. The image must be JPEG/PNG/GIF and within the configured
// size limit; only its relative storage reference is persisted.
func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an image"})
		return
	}

	if fileHeader.Size > pc.cfg.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds the maximum allowed size"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !utils.IsAllowedImage(fileHeader.Filename, contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPEG, PNG and GIF images are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}
	defer file.Close()

	imageRef, err := pc.storage.Save(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	post := models.Post{
		ID:      uuid.New().String(),
		UserID:  userID,
		Image:   imageRef,
		Caption: c.PostForm("caption"),
	}

	if err := pc.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	// Load the complete post with author info
	if err := pc.db.Preload("User").Preload("Likes").First(&post, "id = ?", post.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		return
	}

	c.JSON(http.StatusCreated, pc.view(post))
}

// GetPosts returns every post, newest first, with authors resolved and image
// references rewritten to fully-qualified URLs.
func (pc *PostController) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := pc.db.Preload("User").Preload("Likes").
		Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, pc.view(post))
	}

	c.JSON(http.StatusOK, views)
}

// ToggleLike likes the post if the caller has not liked it yet, otherwise
// removes the like. Returns the updated post either way.
func (pc *PostController) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("post_id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existingLike models.PostLike
	err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existingLike).Error
	if err == nil {
		if err := pc.db.Delete(&existingLike).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like"})
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like"})
		return
	} else {
		like := models.PostLike{
			PostID: postID,
			UserID: userID,
		}
		if err := pc.db.Create(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like"})
			return
		}
	}

	if err := pc.db.Preload("User").Preload("Likes").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating like"})
		return
	}

	c.JSON(http.StatusOK, pc.view(post))
}

func (pc *PostController) view(post models.Post) models.PostView {
	likes := make([]string, 0, len(post.Likes))
	for _, like := range post.Likes {
		likes = append(likes, like.UserID)
	}

	image := post.Image
	if !strings.HasPrefix(image, "http") {
		image = pc.cfg.BaseURL + image
	}

	return models.PostView{
		ID:        post.ID,
		User:      post.User.Profile(),
		Image:     image,
		Caption:   post.Caption,
		Likes:     likes,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
