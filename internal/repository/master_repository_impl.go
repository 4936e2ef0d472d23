package repository

import (
	"errors"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type masterRepository struct{}

func NewMasterRepository() domainRepo.MasterRepository {
	return &masterRepository{}
}

func (r *masterRepository) FindFirst(db *gorm.DB) (*entity.Master, error) {
	var master entity.Master
	err := db.Order("id").First(&master).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &master, nil
}

func (r *masterRepository) FindByID(db *gorm.DB, id int) (*entity.Master, error) {
	var master entity.Master
	err := db.Where("id = ?", id).First(&master).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &master, nil
}

func (r *masterRepository) FindByTgUserID(db *gorm.DB, tgUserID int64) (*entity.Master, error) {
	var master entity.Master
	err := db.Where("tg_user_id = ?", tgUserID).First(&master).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &master, nil
}

func (r *masterRepository) Update(db *gorm.DB, master *entity.Master) error {
	return db.Save(master).Error
}
