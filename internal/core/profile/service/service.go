package profileapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	profileEntity "blogpost/internal/core/profile"
	profilePort "blogpost/internal/ports/profile"
	userPort "blogpost/internal/ports/user"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type ProfileService struct {
	ProfileRepository profilePort.ProfileRepository
}

func NewProfileService(repo profilePort.ProfileRepository) *ProfileService {
	return &ProfileService{
		ProfileRepository: repo,
	}
}

// GetProfile returns the identity's profile, or an empty one if it was never edited.
func (s *ProfileService) GetProfile(ctx context.Context, identity *userPort.UserDTO) (*profilePort.ProfileDTO, error) {
	if identity == nil {
		return nil, apperror.ErrUnauthenticated
	}
	p, err := s.ProfileRepository.FindByUserID(ctx, identity.ID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &profilePort.ProfileDTO{UserID: identity.ID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profilePort.ToDTO(p), nil
}

// EditProfile upserts the identity's single profile record.
func (s *ProfileService) EditProfile(ctx context.Context, identity *userPort.UserDTO, in profilePort.ProfileInput) (*profilePort.ProfileDTO, error) {
	if identity == nil {
		return nil, apperror.ErrUnauthenticated
	}
	if err := validateProfile(in); err != nil {
		return nil, err
	}

	uid, err := uuid.FromString(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid identity id: %w", err)
	}

	p := &profileEntity.Profile{
		UserID:   uid,
		Bio:      in.Bio,
		Location: in.Location,
	}
	if in.BirthDate != "" {
		d, _ := time.Parse(profilePort.DateLayout, in.BirthDate)
		p.BirthDate = &d
	}

	if in.Image != "" {
		img := in.Image
		p.Image = &img
	} else {
		// keep the current avatar when no new one was uploaded
		existing, err := s.ProfileRepository.FindByUserID(ctx, identity.ID)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		if existing != nil {
			p.Image = existing.Image
		}
	}

	saved, err := s.ProfileRepository.Upsert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	config.Logger.Info("profile updated", zap.String("userID", identity.ID))
	return profilePort.ToDTO(saved), nil
}

func validateProfile(in profilePort.ProfileInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Location,
			validation.RuneLength(0, profileEntity.MaxLocationLength).
				Error(fmt.Sprintf("must be at most %d characters", profileEntity.MaxLocationLength))),
		validation.Field(&in.BirthDate,
			validation.Date(profilePort.DateLayout).Error("must be a date in YYYY-MM-DD format")),
		validation.Field(&in.Image,
			validation.RuneLength(0, profileEntity.MaxImageLength).
				Error(fmt.Sprintf("must be at most %d characters", profileEntity.MaxImageLength))),
	)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	return nil
}
