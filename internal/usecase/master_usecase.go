package usecase

import (
	"context"
	"errors"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidBuffer = errors.New("buffer must be one of the allowed options")

// MasterUsecase manages the master profile.
type MasterUsecase interface {
	Get(ctx context.Context) (*entity.Master, error)
	GetByTgUserID(ctx context.Context, tgUserID int64) (*entity.Master, error)
	UpdateProfile(ctx context.Context, id int, displayName, workStart, workEnd string, bufferMin int, bufferOptions []int) (*entity.Master, error)
}

type masterUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	masterRepo repository.MasterRepository
}

func NewMasterUsecase(db *gorm.DB, log *logrus.Logger, masterRepo repository.MasterRepository) MasterUsecase {
	return &masterUsecase{
		db:         db,
		log:        log,
		masterRepo: masterRepo,
	}
}

func (u *masterUsecase) Get(ctx context.Context) (*entity.Master, error) {
	master, err := u.masterRepo.FindFirst(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}
	return master, nil
}

func (u *masterUsecase) GetByTgUserID(ctx context.Context, tgUserID int64) (*entity.Master, error) {
	return u.masterRepo.FindByTgUserID(u.db.WithContext(ctx), tgUserID)
}

func (u *masterUsecase) UpdateProfile(ctx context.Context, id int, displayName, workStart, workEnd string, bufferMin int, bufferOptions []int) (*entity.Master, error) {
	allowed := false
	for _, opt := range bufferOptions {
		if bufferMin == opt {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidBuffer
	}

	db := u.db.WithContext(ctx)
	master, err := u.masterRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	master.DisplayName = displayName
	master.WorkStartTime = workStart
	master.WorkEndTime = workEnd
	master.BufferMin = bufferMin
	if err := u.masterRepo.Update(db, master); err != nil {
		u.log.Warnf("Failed to update master %d: %+v", id, err)
		return nil, err
	}
	return master, nil
}
