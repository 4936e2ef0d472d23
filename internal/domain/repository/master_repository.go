package repository

import (
	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type MasterRepository interface {
	FindFirst(db *gorm.DB) (*entity.Master, error)
	FindByID(db *gorm.DB, id int) (*entity.Master, error)
	FindByTgUserID(db *gorm.DB, tgUserID int64) (*entity.Master, error)
	Update(db *gorm.DB, master *entity.Master) error
}
