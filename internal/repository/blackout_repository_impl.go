package repository

import (
	"time"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type blackoutRepository struct{}

func NewBlackoutRepository() domainRepo.BlackoutRepository {
	return &blackoutRepository{}
}

func (r *blackoutRepository) Create(db *gorm.DB, blackout *entity.Blackout) error {
	return db.Create(blackout).Error
}

func (r *blackoutRepository) FindAll(db *gorm.DB, masterID int) ([]entity.Blackout, error) {
	var blackouts []entity.Blackout
	err := db.Where("master_id = ?", masterID).Order("start_ts").Find(&blackouts).Error
	if err != nil {
		return nil, err
	}
	return blackouts, nil
}

func (r *blackoutRepository) FindOverlapping(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Blackout, error) {
	var blackouts []entity.Blackout
	err := db.Where("master_id = ?", masterID).
		Where("start_ts < ? AND end_ts > ?", end, start).
		Find(&blackouts).Error
	if err != nil {
		return nil, err
	}
	return blackouts, nil
}

func (r *blackoutRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.Blackout{}, id).Error
}
