package models

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

// Friendship is one direction of a friend relation. The friend controller
// always writes both directions together, so for every (A,B) row a (B,A)
// row exists.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_user_friend"`
	FriendID  string    `json:"friend_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_user_friend"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID"`
	Friend User `json:"-" gorm:"foreignKey:FriendID"`
}

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest rows only ever exist in the pending state: accepting or
// rejecting deletes the row instead of flipping the status.
type FriendRequest struct {
	ID         string              `json:"id" gorm:"primaryKey;size:191"`
	SenderID   string              `json:"sender_id" gorm:"not null;size:191;index:idx_friend_requests_pair"`
	ReceiverID string              `json:"receiver_id" gorm:"not null;size:191;index:idx_friend_requests_pair"`
	Status     FriendRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"-" gorm:"foreignKey:ReceiverID"`
}

// UserProfile is the sanitized user shape returned by the API. The password
// hash never leaves the models layer.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Recommendation is a candidate friend ranked by mutual-friend count.
type Recommendation struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	MutualFriends int    `json:"mutual_friends"`
}

// FriendRequestView resolves the sender for incoming-request listings.
type FriendRequestView struct {
	ID        string              `json:"id"`
	From      UserProfile         `json:"from"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}
