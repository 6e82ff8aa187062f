package database

import (
	"fmt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"socialgram-api/models"

	"golang.org/x/crypto/bcrypt"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.FriendRequest{},
		&models.Post{},
		&models.PostLike{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Feed query scans posts newest-first
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for posts: %v\n", err)
	}

	// Incoming-request listings filter by receiver and status
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver_status ON friend_requests(receiver_id, status)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for friend_requests: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	testUsers := []models.User{
		{
			ID:       "2f0cdcba-57b6-4c20-a2a4-54a1c83e1b01",
			Username: "john_doe",
			Email:    "john@example.com",
			Password: string(hashed),
		},
		{
			ID:       "8d62d6a6-91b5-4f31-8a93-6be2b77a2f02",
			Username: "jane_smith",
			Email:    "jane@example.com",
			Password: string(hashed),
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Username, err)
		}
	}

	fmt.Println("Database seeded with test users")
	return nil
}
