package profile

import (
	"time"

	"blogpost/internal/core/user"

	"github.com/gofrs/uuid"
)

const (
	MaxLocationLength = 100
	MaxImageLength    = 100
)

// Profile is the single biographical record attached to a User.
type Profile struct {
	UserID    uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	User      user.User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Bio       string     `gorm:"type:text"`
	Location  string     `gorm:"type:varchar(100)"`
	BirthDate *time.Time `gorm:"type:date"`
	Image     *string    `gorm:"type:varchar(100)"`
}
