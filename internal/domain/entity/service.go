package entity

import (
	"time"
)

// Service represents a bookable service type. Services referenced by
// appointments are deactivated, never hard-deleted.
type Service struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	DurationMin int       `gorm:"not null;default:30" json:"duration_min"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
