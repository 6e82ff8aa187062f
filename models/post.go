package models

import "time"

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Image     string    `json:"image" gorm:"not null;size:500"` // relative reference, e.g. /uploads/<name>
	Caption   string    `json:"caption" gorm:"size:2000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User       `json:"user" gorm:"foreignKey:UserID"`
	Likes []PostLike `json:"likes" gorm:"foreignKey:PostID"`
}

type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// PostView is the API shape for a post: author sanitized, image rewritten to
// a fully-qualified URL, likes flattened to the set of user ids.
type PostView struct {
	ID        string      `json:"id"`
	User      UserProfile `json:"user"`
	Image     string      `json:"image"`
	Caption   string      `json:"caption"`
	Likes     []string    `json:"likes"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
