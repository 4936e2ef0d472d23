package entity

import (
	"time"
)

// Blackout is an admin-defined interval [StartTs, EndTs) during which no
// slot may be offered. Immutable once created; existing bookings inside
// the window are not cancelled retroactively.
type Blackout struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	MasterID         int       `gorm:"not null;index" json:"master_id"`
	StartTs          time.Time `gorm:"not null" json:"start_ts"`
	EndTs            time.Time `gorm:"not null" json:"end_ts"`
	Reason           string    `gorm:"type:text" json:"reason"`
	CreatedByAdminID int64     `json:"created_by_admin_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Master Master `gorm:"foreignKey:MasterID" json:"master,omitempty"`
}

func (Blackout) TableName() string {
	return "blackouts"
}
