package types

import (
	"time"

	"github.com/google/uuid"
)

// Account is a distribution account on an external platform. Read-only from
// the engine's perspective; the roster is managed out-of-band.
type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	Platform string    `gorm:"column:platform;not null;default:''" json:"platform"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
