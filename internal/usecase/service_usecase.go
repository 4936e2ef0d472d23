package usecase

import (
	"context"
	"errors"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrServiceReferenced = errors.New("service is referenced by appointments")
)

// ServiceUsecase manages the service catalogue for the admin surface.
type ServiceUsecase interface {
	Create(ctx context.Context, name string, durationMin int, adminID int64) (*entity.Service, error)
	GetAll(ctx context.Context) ([]entity.Service, error)
	GetActive(ctx context.Context) ([]entity.Service, error)
	Update(ctx context.Context, id int, name string, durationMin int, active bool, adminID int64) (*entity.Service, error)
	// Delete removes an unreferenced service; a referenced one is
	// deactivated instead and ErrServiceReferenced is returned.
	Delete(ctx context.Context, id int, adminID int64) error
}

type serviceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	serviceRepo repository.ServiceRepository
	events      service.EventService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	events service.EventService,
) ServiceUsecase {
	return &serviceUsecase{
		db:          db,
		log:         log,
		serviceRepo: serviceRepo,
		events:      events,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, name string, durationMin int, adminID int64) (*entity.Service, error) {
	svc := &entity.Service{
		Name:        name,
		DurationMin: durationMin,
		Active:      true,
	}
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.serviceRepo.Create(tx, svc); err != nil {
			return err
		}
		return u.events.Emit(tx, &entity.Event{
			EventType: entity.EventServiceUpdated,
			ActorType: entity.ActorAdmin,
			ActorID:   adminID,
			Payload:   entity.JSON{"service_id": svc.ID, "action": "created"},
		})
	})
	if err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}
	return svc, nil
}

func (u *serviceUsecase) GetAll(ctx context.Context) ([]entity.Service, error) {
	return u.serviceRepo.FindAll(u.db.WithContext(ctx))
}

func (u *serviceUsecase) GetActive(ctx context.Context) ([]entity.Service, error) {
	return u.serviceRepo.FindActive(u.db.WithContext(ctx))
}

func (u *serviceUsecase) Update(ctx context.Context, id int, name string, durationMin int, active bool, adminID int64) (*entity.Service, error) {
	var updated *entity.Service
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := u.serviceRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}

		svc.Name = name
		svc.DurationMin = durationMin
		svc.Active = active
		if err := u.serviceRepo.Update(tx, svc); err != nil {
			return err
		}
		updated = svc
		return u.events.Emit(tx, &entity.Event{
			EventType: entity.EventServiceUpdated,
			ActorType: entity.ActorAdmin,
			ActorID:   adminID,
			Payload:   entity.JSON{"service_id": svc.ID, "active": active},
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *serviceUsecase) Delete(ctx context.Context, id int, adminID int64) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := u.serviceRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if svc == nil {
			return ErrServiceNotFound
		}

		count, err := u.serviceRepo.CountAppointments(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			// Referenced services are never hard-deleted.
			svc.Active = false
			if err := u.serviceRepo.Update(tx, svc); err != nil {
				return err
			}
			return ErrServiceReferenced
		}
		return u.serviceRepo.Delete(tx, id)
	})
}
