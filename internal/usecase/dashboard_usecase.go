package usecase

import (
	"context"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dashboard is the admin overview: today's active appointments plus
// upcoming unconfirmed ones (the no-show risk list).
type Dashboard struct {
	TodayAppointments []entity.Appointment `json:"today_appointments"`
	Unconfirmed       []entity.Appointment `json:"unconfirmed"`
}

type DashboardUsecase interface {
	Get(ctx context.Context, masterID int) (*Dashboard, error)
	ListClients(ctx context.Context) ([]entity.Client, error)
	ListEvents(ctx context.Context, limit int) ([]entity.Event, error)
}

type dashboardUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	masterRepo repository.MasterRepository
	aptRepo    repository.AppointmentRepository
	clientRepo repository.ClientRepository
	eventRepo  repository.EventRepository
	now        func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	masterRepo repository.MasterRepository,
	aptRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	eventRepo repository.EventRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:         db,
		log:        log,
		masterRepo: masterRepo,
		aptRepo:    aptRepo,
		clientRepo: clientRepo,
		eventRepo:  eventRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *dashboardUsecase) Get(ctx context.Context, masterID int) (*Dashboard, error) {
	db := u.db.WithContext(ctx)

	master, err := u.masterRepo.FindByID(db, masterID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, ErrMasterNotFound
	}

	loc := master.Location()
	now := u.now()
	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).UTC()
	todayEnd := todayStart.Add(24 * time.Hour)
	weekEnd := todayStart.Add(7 * 24 * time.Hour)

	today, err := u.aptRepo.FindActiveInWindow(db, masterID, todayStart, todayEnd)
	if err != nil {
		return nil, err
	}
	unconfirmed, err := u.aptRepo.FindUnconfirmed(db, masterID, now, weekEnd)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TodayAppointments: today,
		Unconfirmed:       unconfirmed,
	}, nil
}

func (u *dashboardUsecase) ListClients(ctx context.Context) ([]entity.Client, error) {
	return u.clientRepo.FindAll(u.db.WithContext(ctx))
}

func (u *dashboardUsecase) ListEvents(ctx context.Context, limit int) ([]entity.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.eventRepo.FindRecent(u.db.WithContext(ctx), limit)
}
