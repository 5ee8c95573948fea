package postapp

import (
	"context"
	"fmt"

	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	postEntity "blogpost/internal/core/post"
	postPort "blogpost/internal/ports/post"
	userPort "blogpost/internal/ports/user"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const MsgTitleAndContentRequired = "Title and content are required fields."

type PostService struct {
	PostRepository postPort.PostRepository
}

func NewPostService(postRepo postPort.PostRepository) *PostService {
	return &PostService{
		PostRepository: postRepo,
	}
}

// CreatePost validates and stores a new post for author.
func (s *PostService) CreatePost(ctx context.Context, title, content string, author *userPort.UserDTO) (*postPort.PostDTO, error) {
	if author == nil {
		return nil, apperror.ErrUnauthenticated
	}
	if err := validatePost(title, content); err != nil {
		return nil, err
	}

	uid, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	post := &postEntity.Post{
		Title:   title,
		Content: content,
		UserID:  uid,
	}

	createdPost, err := s.PostRepository.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	config.Logger.Info("post created", zap.Uint("postID", createdPost.ID), zap.String("userID", author.ID))

	dto := postPort.ToDTO(createdPost)
	dto.User = author
	return dto, nil
}

func validatePost(title, content string) error {
	err := validation.Errors{
		"title":   validation.Validate(title, validation.Required),
		"content": validation.Validate(content, validation.Required),
	}.Filter()
	if err != nil {
		return apperror.NewValidationError(MsgTitleAndContentRequired)
	}
	if err := validation.Validate(title, validation.RuneLength(1, postEntity.MaxTitleLength)); err != nil {
		return apperror.NewValidationError(fmt.Sprintf("Title must be at most %d characters.", postEntity.MaxTitleLength))
	}
	return nil
}

// ListRecent returns every post, newest first.
func (s *PostService) ListRecent(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.ToDTO(p))
	}
	return dtos, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}
