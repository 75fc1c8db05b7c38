package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	VariantStatusDraft    = "draft"
	VariantStatusTesting  = "testing"
	VariantStatusWinner   = "winner"
	VariantStatusArchived = "archived"
)

// Variant is one content treatment node in the experimentation tree. A root
// variant has no parent and no change type; children are created by scaling
// calls and point at the winner they derive from.
type Variant struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParentVariantID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_variant_id,omitempty"`
	IterationGroupID *uuid.UUID `gorm:"type:uuid;index" json:"iteration_group_id,omitempty"`

	Title  string `gorm:"column:title;not null;default:''" json:"title"`
	Hook   string `gorm:"column:hook;type:text;not null;default:''" json:"hook"`
	Script string `gorm:"column:script;type:text;not null;default:''" json:"script"`

	Status   string   `gorm:"column:status;not null;default:'draft';index" json:"status"`
	IsWinner bool     `gorm:"column:is_winner;not null;default:false;index" json:"is_winner"`
	Locked   bool     `gorm:"column:locked;not null;default:false" json:"locked"`
	Score    *float64 `gorm:"column:score" json:"score,omitempty"`

	ChangeType *string `gorm:"column:change_type" json:"change_type,omitempty"`
	ChangeNote string  `gorm:"column:change_note;type:text;not null;default:''" json:"change_note"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Variant) TableName() string { return "variants" }

// IsRoot reports whether the variant is the baseline of its tree.
func (v *Variant) IsRoot() bool { return v.ParentVariantID == nil }
