package database

import (
	"context"

	"blogpost/internal/core/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepositoryDatabase struct {
	db *gorm.DB
}

func NewProfileRepositoryDatabase(db *gorm.DB) *ProfileRepositoryDatabase {
	return &ProfileRepositoryDatabase{db: db}
}

func (repo *ProfileRepositoryDatabase) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	var p profile.Profile
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Upsert writes the whole profile row in one statement; the last writer wins.
func (repo *ProfileRepositoryDatabase) Upsert(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bio", "location", "birth_date", "image"}),
		}).
		Create(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}
