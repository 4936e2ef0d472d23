package repository

import (
	"time"

	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type PriceRepository interface {
	Create(db *gorm.DB, price *entity.MasterServicePrice) error
	FindAll(db *gorm.DB, masterID int) ([]entity.MasterServicePrice, error)
	// FindCurrent returns the price row with the greatest active_from not
	// after the given date, or nil if the pair has no price yet.
	FindCurrent(db *gorm.DB, masterID, serviceID int, at time.Time) (*entity.MasterServicePrice, error)
}
