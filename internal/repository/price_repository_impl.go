package repository

import (
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type priceRepository struct{}

func NewPriceRepository() domainRepo.PriceRepository {
	return &priceRepository{}
}

func (r *priceRepository) Create(db *gorm.DB, price *entity.MasterServicePrice) error {
	return db.Create(price).Error
}

func (r *priceRepository) FindAll(db *gorm.DB, masterID int) ([]entity.MasterServicePrice, error) {
	var prices []entity.MasterServicePrice
	err := db.Preload("Service").
		Where("master_id = ?", masterID).
		Order("service_id, active_from DESC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *priceRepository) FindCurrent(db *gorm.DB, masterID, serviceID int, at time.Time) (*entity.MasterServicePrice, error) {
	var price entity.MasterServicePrice
	err := db.Where("master_id = ? AND service_id = ? AND active_from <= ?", masterID, serviceID, at).
		Order("active_from DESC").
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &price, nil
}
