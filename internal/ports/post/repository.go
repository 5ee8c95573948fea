package post

import (
	"context"
	"time"

	"blogpost/internal/core/post"
	userPort "blogpost/internal/ports/user"
)

// PostRepository stores and loads posts.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	ListRecent(ctx context.Context) ([]*post.Post, error)
}

type PostDTO struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	UserID    string            `json:"user_id"`
	User      *userPort.UserDTO `json:"user,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func ToDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		UserID:    p.UserID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User.Username != "" {
		dto.User = userPort.ToDTO(&p.User)
	}
	return dto
}
