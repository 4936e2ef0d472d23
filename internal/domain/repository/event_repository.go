package repository

import (
	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type EventRepository interface {
	// Create appends one event row. Events are insert-only.
	Create(db *gorm.DB, event *entity.Event) error
	FindRecent(db *gorm.DB, limit int) ([]entity.Event, error)
}
