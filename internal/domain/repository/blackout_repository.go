package repository

import (
	"time"

	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type BlackoutRepository interface {
	Create(db *gorm.DB, blackout *entity.Blackout) error
	FindAll(db *gorm.DB, masterID int) ([]entity.Blackout, error)
	// FindOverlapping returns blackouts intersecting [start, end).
	FindOverlapping(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Blackout, error)
	Delete(db *gorm.DB, id int) error
}
