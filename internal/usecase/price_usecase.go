package usecase

import (
	"context"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PriceUsecase manages time-effective prices. Existing rows are never
// edited; a price change is a new row with a later active_from, so old
// appointment snapshots stay explainable.
type PriceUsecase interface {
	Create(ctx context.Context, masterID, serviceID int, price decimal.Decimal, activeFrom time.Time, adminID int64) (*entity.MasterServicePrice, error)
	GetAll(ctx context.Context, masterID int) ([]entity.MasterServicePrice, error)
}

type priceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	priceRepo   repository.PriceRepository
	serviceRepo repository.ServiceRepository
	events      service.EventService
}

func NewPriceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	priceRepo repository.PriceRepository,
	serviceRepo repository.ServiceRepository,
	events service.EventService,
) PriceUsecase {
	return &priceUsecase{
		db:          db,
		log:         log,
		priceRepo:   priceRepo,
		serviceRepo: serviceRepo,
		events:      events,
	}
}

func (u *priceUsecase) Create(ctx context.Context, masterID, serviceID int, price decimal.Decimal, activeFrom time.Time, adminID int64) (*entity.MasterServicePrice, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	row := &entity.MasterServicePrice{
		MasterID:   masterID,
		ServiceID:  serviceID,
		Price:      price,
		ActiveFrom: activeFrom,
	}
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.priceRepo.Create(tx, row); err != nil {
			return err
		}
		return u.events.Emit(tx, &entity.Event{
			EventType: entity.EventPriceChanged,
			MasterID:  &masterID,
			ActorType: entity.ActorAdmin,
			ActorID:   adminID,
			Payload: entity.JSON{
				"service_id":  serviceID,
				"price":       price.String(),
				"active_from": activeFrom.Format("2006-01-02"),
			},
		})
	})
	if err != nil {
		u.log.Warnf("Failed to create price: %+v", err)
		return nil, err
	}
	return row, nil
}

func (u *priceUsecase) GetAll(ctx context.Context, masterID int) ([]entity.MasterServicePrice, error) {
	return u.priceRepo.FindAll(u.db.WithContext(ctx), masterID)
}
