package database

import (
	"blogpost/internal/core/comment"
	"blogpost/internal/core/post"
	"blogpost/internal/core/profile"
	"blogpost/internal/core/user"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the four record tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&profile.Profile{},
		&comment.Comment{},
	)
}
