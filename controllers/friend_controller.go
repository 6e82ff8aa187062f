package controllers

import (
	"net/http"
	"sort"

	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"socialgram-api/models"
	"socialgram-api/utils"
)

type FriendController struct {
	db *gorm.DB
}

func NewFriendController(db *gorm.DB) *FriendController {
	return &FriendController{db: db}
}

// GetFriends returns the caller's friends as sanitized user records.
func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := fc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	friendIDs, err := fc.friendIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	friends := make([]models.UserProfile, 0, len(friendIDs))
	if len(friendIDs) > 0 {
		var users []models.User
		if err := fc.db.Where("id IN ?", friendIDs).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend details"})
			return
		}
		// De-duplicate by id even if the friendship rows ever double up
		seen := make(map[string]bool, len(users))
		for _, u := range users {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			friends = append(friends, u.Profile())
		}
	}

	c.JSON(http.StatusOK, friends)
}

// GetRecommendations ranks every non-friend user by mutual-friend count,
// descending. Ties break on ascending user id so the order is deterministic.
func (fc *FriendController) GetRecommendations(c *gin.Context) {
	userID := c.GetString("user_id")

	friendIDs, err := fc.friendIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	myFriends := make(map[string]bool, len(friendIDs))
	for _, id := range friendIDs {
		myFriends[id] = true
	}

	var candidates []models.User
	query := fc.db.Where("id != ?", userID)
	if len(friendIDs) > 0 {
		query = query.Where("id NOT IN ?", friendIDs)
	}
	if err := query.Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	recommendations := make([]models.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		candidateFriends, err := fc.friendIDs(candidate.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		mutual := 0
		for _, id := range candidateFriends {
			if myFriends[id] {
				mutual++
			}
		}

		recommendations = append(recommendations, models.Recommendation{
			ID:            candidate.ID,
			Username:      candidate.Username,
			Email:         candidate.Email,
			MutualFriends: mutual,
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].MutualFriends != recommendations[j].MutualFriends {
			return recommendations[i].MutualFriends > recommendations[j].MutualFriends
		}
		return recommendations[i].ID < recommendations[j].ID
	})

	c.JSON(http.StatusOK, recommendations)
}

// SendFriendRequest creates a pending request addressed to :user_id. At most
// one pending request may exist per (sender, receiver) pair.
func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID := c.Param("user_id")

	if senderID == receiverID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send friend request to yourself"})
		return
	}

	var receiver models.User
	if err := fc.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existingRequest models.FriendRequest
	err := fc.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.FriendRequestStatusPending).First(&existingRequest).Error

	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Friend request already sent"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	friendRequest := models.FriendRequest{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestStatusPending,
	}

	if err := fc.db.Create(&friendRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

// GetPendingRequests lists the caller's incoming requests with senders resolved.
func (fc *FriendController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	var requests []models.FriendRequest
	if err := fc.db.Preload("Sender").Where("receiver_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at ASC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend requests"})
		return
	}

	views := make([]models.FriendRequestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, models.FriendRequestView{
			ID:        req.ID,
			From:      req.Sender.Profile(),
			Status:    req.Status,
			CreatedAt: req.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, views)
}

// RespondToFriendRequest accepts or rejects a pending request addressed to
// the caller. Accepting writes both friendship directions and removes the
// request row in a single transaction; rejecting just removes the row.
func (fc *FriendController) RespondToFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requestID := c.Param("request_id")
	action := c.Param("action")

	if action != "accept" && action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	var friendRequest models.FriendRequest
	if err := fc.db.First(&friendRequest, "id = ? AND receiver_id = ? AND status = ?",
		requestID, userID, models.FriendRequestStatusPending).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	err := fc.db.Transaction(func(tx *gorm.DB) error {
		if action == "accept" {
			pair := []models.Friendship{
				{UserID: friendRequest.ReceiverID, FriendID: friendRequest.SenderID},
				{UserID: friendRequest.SenderID, FriendID: friendRequest.ReceiverID},
			}
			for _, friendship := range pair {
				// Set add: accepting a request from an existing friend
				// must not fail on the unique pair index
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&friendship).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(&friendRequest).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request " + action + "ed"})
}

// RemoveFriend deletes both directions of the friendship. Removing a pair
// that was never friends is a no-op, so the operation is idempotent.
func (fc *FriendController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("friend_id")

	if !utils.IsValidID(friendID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid friend ID"})
		return
	}

	var user models.User
	if err := fc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var friend models.User
	if err := fc.db.First(&friend, "id = ?", friendID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend not found"})
		return
	}

	err := fc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&models.Friendship{}).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

func (fc *FriendController) friendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	if err := fc.db.Where("user_id = ?", userID).Find(&friendships).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		ids = append(ids, friendship.FriendID)
	}
	return ids, nil
}
