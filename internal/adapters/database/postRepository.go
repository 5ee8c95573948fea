package database

import (
	"context"

	"blogpost/internal/core/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db  *gorm.DB
	now Clock
}

func NewPostRepositoryDatabase(db *gorm.DB, now Clock) *PostRepositoryDatabase {
	if now == nil {
		now = defaultClock
	}
	return &PostRepositoryDatabase{db: db, now: now}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	ts := repo.now()
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListRecent returns every post, newest first. Ties on created_at fall back to insertion order.
func (repo *PostRepositoryDatabase) ListRecent(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
