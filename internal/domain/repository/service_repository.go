package repository

import (
	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
	FindActive(db *gorm.DB) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	CountAppointments(db *gorm.DB, serviceID int) (int64, error)
	Delete(db *gorm.DB, id int) error
}
