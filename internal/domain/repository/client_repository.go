package repository

import (
	"time"

	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(db *gorm.DB, client *entity.Client) error
	FindByID(db *gorm.DB, id int) (*entity.Client, error)
	FindByTgUserID(db *gorm.DB, tgUserID int64) (*entity.Client, error)
	FindAll(db *gorm.DB) ([]entity.Client, error)
	Update(db *gorm.DB, client *entity.Client) error
	// FindDormant returns active clients whose last visit predates the
	// threshold and who have not been nudged since the cooldown boundary.
	FindDormant(db *gorm.DB, visitBefore, reactivationBefore time.Time) ([]entity.Client, error)
}
