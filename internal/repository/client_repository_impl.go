package repository

import (
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type clientRepository struct{}

func NewClientRepository() domainRepo.ClientRepository {
	return &clientRepository{}
}

func (r *clientRepository) Create(db *gorm.DB, client *entity.Client) error {
	return db.Create(client).Error
}

func (r *clientRepository) FindByID(db *gorm.DB, id int) (*entity.Client, error) {
	var client entity.Client
	err := db.Where("id = ?", id).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByTgUserID(db *gorm.DB, tgUserID int64) (*entity.Client, error) {
	var client entity.Client
	err := db.Where("tg_user_id = ?", tgUserID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindAll(db *gorm.DB) ([]entity.Client, error) {
	var clients []entity.Client
	if err := db.Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Update(db *gorm.DB, client *entity.Client) error {
	return db.Save(client).Error
}

func (r *clientRepository) FindDormant(db *gorm.DB, visitBefore, reactivationBefore time.Time) ([]entity.Client, error) {
	var clients []entity.Client
	err := db.Where("tg_status = ?", entity.ClientStatusActive).
		Where("last_visit_at < ?", visitBefore).
		Where("last_reactivation_sent_at IS NULL OR last_reactivation_sent_at < ?", reactivationBefore).
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
