package database

import (
	"context"

	"blogpost/internal/core/comment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepositoryDatabase struct {
	db  *gorm.DB
	now Clock
}

func NewCommentRepositoryDatabase(db *gorm.DB, now Clock) *CommentRepositoryDatabase {
	if now == nil {
		now = defaultClock
	}
	return &CommentRepositoryDatabase{db: db, now: now}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	c.CreatedAt = repo.now()
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
