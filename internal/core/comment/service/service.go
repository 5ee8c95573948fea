package commentapp

import (
	"context"
	"fmt"

	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	commentEntity "blogpost/internal/core/comment"
	commentPort "blogpost/internal/ports/comment"
	postPort "blogpost/internal/ports/post"
	userPort "blogpost/internal/ports/user"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// AddComment attaches a comment by author to an existing post.
func (s *CommentService) AddComment(ctx context.Context, postID uint, content string, author *userPort.UserDTO) (*commentPort.CommentDTO, error) {
	if author == nil {
		return nil, apperror.ErrUnauthenticated
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return nil, apperror.NewValidationError("Content is required.")
	}

	uid, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:  postID,
		UserID:  uid,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	config.Logger.Info("comment created", zap.Uint("commentID", c.ID), zap.Uint("postID", postID))
	return commentPort.ToDTO(c), nil
}
