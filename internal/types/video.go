package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	VideoStatusPending  = "pending"
	VideoStatusEditing  = "editing"
	VideoStatusPosted   = "posted"
	VideoStatusArchived = "archived"
)

// Video is one delivery/production task for a variant on one distribution
// account. The engine only ever creates these in status pending with zero
// counters; the metric fields are written by the external metrics ingester.
type Video struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index" json:"variant_id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	Status   string `gorm:"column:status;not null;default:'pending';index" json:"status"`
	DriveURL string `gorm:"column:drive_url;not null;default:''" json:"drive_url,omitempty"`

	ViewsTotal   int64      `gorm:"column:views_total;not null;default:0" json:"views_total"`
	LikesTotal   int64      `gorm:"column:likes_total;not null;default:0" json:"likes_total"`
	OrdersTotal  int64      `gorm:"column:orders_total;not null;default:0" json:"orders_total"`
	RevenueTotal float64    `gorm:"column:revenue_total;not null;default:0" json:"revenue_total"`
	LastMetricAt *time.Time `gorm:"column:last_metric_at" json:"last_metric_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Video) TableName() string { return "videos" }
