package repository

import (
	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type eventRepository struct{}

func NewEventRepository() domainRepo.EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(db *gorm.DB, event *entity.Event) error {
	return db.Create(event).Error
}

func (r *eventRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Event, error) {
	var events []entity.Event
	err := db.Order("id DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
