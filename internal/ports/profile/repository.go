package profile

import (
	"context"

	"blogpost/internal/core/profile"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*profile.Profile, error)
	Upsert(ctx context.Context, profile *profile.Profile) (*profile.Profile, error)
}

type ProfileDTO struct {
	UserID    string `json:"user_id"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	BirthDate string `json:"birth_date,omitempty"` // YYYY-MM-DD
	Image     string `json:"image,omitempty"`
}

// ProfileInput carries the editable fields. Image is a media reference, empty keeps the old one.
type ProfileInput struct {
	Bio       string
	Location  string
	BirthDate string
	Image     string
}

const DateLayout = "2006-01-02"

func ToDTO(p *profile.Profile) *ProfileDTO {
	dto := &ProfileDTO{
		UserID:   p.UserID.String(),
		Bio:      p.Bio,
		Location: p.Location,
	}
	if p.BirthDate != nil {
		dto.BirthDate = p.BirthDate.Format(DateLayout)
	}
	if p.Image != nil {
		dto.Image = *p.Image
	}
	return dto
}
