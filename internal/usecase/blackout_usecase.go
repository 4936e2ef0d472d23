package usecase

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidInterval = errors.New("blackout end must be after start")

// BlackoutUsecase manages master-owned closed intervals. Creating a
// blackout does not cancel existing bookings inside the window.
type BlackoutUsecase interface {
	Create(ctx context.Context, masterID int, start, end time.Time, reason string, adminID int64) (*entity.Blackout, error)
	GetAll(ctx context.Context, masterID int) ([]entity.Blackout, error)
	Delete(ctx context.Context, id int) error
}

type blackoutUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	blackoutRepo repository.BlackoutRepository
	events       service.EventService
}

func NewBlackoutUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	blackoutRepo repository.BlackoutRepository,
	events service.EventService,
) BlackoutUsecase {
	return &blackoutUsecase{
		db:           db,
		log:          log,
		blackoutRepo: blackoutRepo,
		events:       events,
	}
}

func (u *blackoutUsecase) Create(ctx context.Context, masterID int, start, end time.Time, reason string, adminID int64) (*entity.Blackout, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}

	blackout := &entity.Blackout{
		MasterID:         masterID,
		StartTs:          start.UTC(),
		EndTs:            end.UTC(),
		Reason:           reason,
		CreatedByAdminID: adminID,
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.blackoutRepo.Create(tx, blackout); err != nil {
			return err
		}
		return u.events.Emit(tx, &entity.Event{
			EventType: entity.EventBlackoutCreated,
			MasterID:  &masterID,
			ActorType: entity.ActorAdmin,
			ActorID:   adminID,
			Payload: entity.JSON{
				"start_ts": blackout.StartTs.Format(time.RFC3339),
				"end_ts":   blackout.EndTs.Format(time.RFC3339),
				"reason":   reason,
			},
		})
	})
	if err != nil {
		u.log.Warnf("Failed to create blackout: %+v", err)
		return nil, err
	}
	return blackout, nil
}

func (u *blackoutUsecase) GetAll(ctx context.Context, masterID int) ([]entity.Blackout, error) {
	return u.blackoutRepo.FindAll(u.db.WithContext(ctx), masterID)
}

func (u *blackoutUsecase) Delete(ctx context.Context, id int) error {
	return u.blackoutRepo.Delete(u.db.WithContext(ctx), id)
}
