package database

import (
	"context"
	"errors"

	"blogpost/internal/core/apperror"
	"blogpost/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db  *gorm.DB
	now Clock
}

// NewUserRepositoryDatabase builds the repository; a nil clock means time.Now in UTC.
func NewUserRepositoryDatabase(db *gorm.DB, now Clock) *UserRepositoryDatabase {
	if now == nil {
		now = defaultClock
	}
	return &UserRepositoryDatabase{db: db, now: now}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	ts := repo.now()
	u.CreatedAt = ts
	u.UpdatedAt = ts
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateUsername
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *UserRepositoryDatabase) UpdatePassword(ctx context.Context, id string, hash string) error {
	res := repo.db.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": hash, "updated_at": repo.now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
