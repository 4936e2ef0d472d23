package usecase

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotAlreadyTaken    = errors.New("slot is already taken")
	ErrPriceUnavailable    = errors.New("no price configured for this service")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrNotConfirmable      = errors.New("appointment cannot be confirmed")
	ErrNotActive           = errors.New("appointment is not active")
)

// exclusionViolation is the PostgreSQL SQLSTATE raised when an insert
// collides with the appointments range-exclusion constraint.
const exclusionViolation = "23P01"

// CreateBookingInput carries everything the booking transaction needs.
// Price is captured inside the transaction, not passed by the caller, so a
// concurrent price edit can never produce a stale snapshot.
type CreateBookingInput struct {
	MasterID  int
	ClientID  int
	ServiceID int
	Start     time.Time
	ActorID   int64
}

// BookingUsecase is the booking and lifecycle engine: atomic creation and
// the appointment state machine.
type BookingUsecase interface {
	Create(ctx context.Context, input CreateBookingInput) (*entity.Appointment, error)
	Confirm(ctx context.Context, appointmentID int, clientID int) (*entity.Appointment, error)
	Cancel(ctx context.Context, appointmentID int, actor entity.ActorKind, actorID int64) (*entity.Appointment, error)
	MarkArrived(ctx context.Context, appointmentID int, masterID int) (*entity.Appointment, error)
	MarkDone(ctx context.Context, appointmentID int, masterID int) (*entity.Appointment, error)
	CurrentPrice(ctx context.Context, masterID, serviceID int) (*decimal.Decimal, error)
	FindByID(ctx context.Context, appointmentID int) (*entity.Appointment, error)
	// Details loads an appointment with client and service preloaded.
	Details(ctx context.Context, appointmentID int) (*entity.Appointment, error)
	// MasterSchedule lists booked/confirmed/arrived/done appointments with
	// start in [from, to), client and service preloaded.
	MasterSchedule(ctx context.Context, masterID int, from, to time.Time) ([]entity.Appointment, error)
	ClientUpcoming(ctx context.Context, clientID int) ([]entity.Appointment, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	aptRepo      repository.AppointmentRepository
	serviceRepo  repository.ServiceRepository
	priceRepo    repository.PriceRepository
	clientRepo   repository.ClientRepository
	reminderRepo repository.ReminderRepository
	events       service.EventService
	now          func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	aptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	priceRepo repository.PriceRepository,
	clientRepo repository.ClientRepository,
	reminderRepo repository.ReminderRepository,
	events service.EventService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		aptRepo:      aptRepo,
		serviceRepo:  serviceRepo,
		priceRepo:    priceRepo,
		clientRepo:   clientRepo,
		reminderRepo: reminderRepo,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create books a slot atomically. One transaction commits the appointment,
// its reminder plan and the appointment_created event, or nothing at all.
//
// Race discipline, two layers:
//  1. FOR UPDATE probe over intersecting active appointments — contenders
//     serialize here and get a clean ErrSlotAlreadyTaken.
//  2. The store range-exclusion constraint backstops any gap in (1); a
//     23P01 on insert is translated to the same error.
func (u *bookingUsecase) Create(ctx context.Context, input CreateBookingInput) (*entity.Appointment, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || !svc.Active {
		return nil, ErrServiceNotFound
	}

	now := u.now()
	start := input.Start.UTC()
	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	var appointment *entity.Appointment
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		price, err := u.priceRepo.FindCurrent(tx, input.MasterID, input.ServiceID, now)
		if err != nil {
			return err
		}
		if price == nil {
			return ErrPriceUnavailable
		}

		conflicts, err := u.aptRepo.FindConflicting(tx, input.MasterID, start, end)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrSlotAlreadyTaken
		}

		appointment = &entity.Appointment{
			MasterID:      input.MasterID,
			ClientID:      input.ClientID,
			ServiceID:     input.ServiceID,
			StartTs:       start,
			EndTs:         end,
			Status:        entity.AppointmentStatusBooked,
			PriceSnapshot: price.Price,
		}
		if err := u.aptRepo.Create(tx, appointment); err != nil {
			return err
		}

		reminders := service.PlanReminders(appointment.ID, start, now)
		if err := u.reminderRepo.CreateBatch(tx, reminders); err != nil {
			return err
		}

		return u.events.EmitAppointment(tx, entity.EventAppointmentCreated, appointment,
			entity.ActorClient, input.ActorID, entity.JSON{
				"price":    price.Price.String(),
				"start_ts": start.Format(time.RFC3339),
			})
	})
	if err != nil {
		if isExclusionViolation(err) {
			u.log.Infof("Exclusion constraint rejected booking master=%d start=%s", input.MasterID, start)
			return nil, ErrSlotAlreadyTaken
		}
		if errors.Is(err, ErrSlotAlreadyTaken) || errors.Is(err, ErrPriceUnavailable) {
			return nil, err
		}
		u.log.Errorf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%d master=%d client=%d start=%s",
		appointment.ID, input.MasterID, input.ClientID, start)
	return appointment, nil
}

// Confirm moves booked → confirmed. Any other source status is a no-op
// reported as ErrNotConfirmable.
func (u *bookingUsecase) Confirm(ctx context.Context, appointmentID int, clientID int) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apt, err := u.aptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if apt == nil {
			return ErrAppointmentNotFound
		}
		if apt.Status != entity.AppointmentStatusBooked {
			return ErrNotConfirmable
		}

		now := u.now()
		apt.Status = entity.AppointmentStatusConfirmed
		apt.ConfirmedAt = &now
		if err := u.aptRepo.Save(tx, apt); err != nil {
			return err
		}
		appointment = apt
		return u.events.EmitAppointment(tx, entity.EventAppointmentConfirmed, apt,
			entity.ActorClient, int64(clientID), nil)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel ends an upcoming appointment. The late-cancel boundary is evaluated
// at the moment of this call: less than one hour before start yields status
// late_cancel and a late_cancel event; otherwise cancelled with an
// actor-specific event. Pending reminders are cancelled in the same
// transaction. A second cancel is a no-op returning ErrAlreadyCancelled.
func (u *bookingUsecase) Cancel(ctx context.Context, appointmentID int, actor entity.ActorKind, actorID int64) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apt, err := u.aptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if apt == nil {
			return ErrAppointmentNotFound
		}
		if apt.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if !apt.IsUpcoming() {
			return ErrNotActive
		}

		now := u.now()
		status, eventType := cancelOutcome(apt.StartTs, now, actor)
		apt.Status = status
		apt.CancelledAt = &now
		if err := u.aptRepo.Save(tx, apt); err != nil {
			return err
		}

		if _, err := u.reminderRepo.CancelPending(tx, apt.ID); err != nil {
			return err
		}

		appointment = apt
		return u.events.EmitAppointment(tx, eventType, apt, actor, actorID, entity.JSON{
			"is_late": status == entity.AppointmentStatusLateCancel,
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.Infof("Appointment cancelled: id=%d status=%s actor=%s", appointment.ID, appointment.Status, actor)
	return appointment, nil
}

// MarkArrived moves booked/confirmed → arrived.
func (u *bookingUsecase) MarkArrived(ctx context.Context, appointmentID int, masterID int) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apt, err := u.aptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if apt == nil {
			return ErrAppointmentNotFound
		}
		if !apt.IsUpcoming() {
			return ErrNotActive
		}

		apt.Status = entity.AppointmentStatusArrived
		if err := u.aptRepo.Save(tx, apt); err != nil {
			return err
		}
		appointment = apt
		return u.events.EmitAppointment(tx, entity.EventClientArrived, apt,
			entity.ActorMaster, int64(masterID), nil)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// MarkDone moves arrived → done and stamps the client's last visit.
func (u *bookingUsecase) MarkDone(ctx context.Context, appointmentID int, masterID int) (*entity.Appointment, error) {
	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apt, err := u.aptRepo.FindByID(tx, appointmentID)
		if err != nil {
			return err
		}
		if apt == nil {
			return ErrAppointmentNotFound
		}
		if apt.Status != entity.AppointmentStatusArrived {
			return ErrNotActive
		}

		apt.Status = entity.AppointmentStatusDone
		if err := u.aptRepo.Save(tx, apt); err != nil {
			return err
		}

		client, err := u.clientRepo.FindByID(tx, apt.ClientID)
		if err != nil {
			return err
		}
		if client != nil {
			now := u.now()
			client.LastVisitAt = &now
			if err := u.clientRepo.Update(tx, client); err != nil {
				return err
			}
		}

		appointment = apt
		return u.events.EmitAppointment(tx, entity.EventServiceDone, apt,
			entity.ActorMaster, int64(masterID), nil)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (u *bookingUsecase) CurrentPrice(ctx context.Context, masterID, serviceID int) (*decimal.Decimal, error) {
	price, err := u.priceRepo.FindCurrent(u.db.WithContext(ctx), masterID, serviceID, u.now())
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrPriceUnavailable
	}
	return &price.Price, nil
}

func (u *bookingUsecase) FindByID(ctx context.Context, appointmentID int) (*entity.Appointment, error) {
	apt, err := u.aptRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		return nil, err
	}
	if apt == nil {
		return nil, ErrAppointmentNotFound
	}
	return apt, nil
}

func (u *bookingUsecase) Details(ctx context.Context, appointmentID int) (*entity.Appointment, error) {
	apt, err := u.aptRepo.FindByIDFull(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		return nil, err
	}
	if apt == nil {
		return nil, ErrAppointmentNotFound
	}
	return apt, nil
}

func (u *bookingUsecase) MasterSchedule(ctx context.Context, masterID int, from, to time.Time) ([]entity.Appointment, error) {
	return u.aptRepo.FindForMasterPeriod(u.db.WithContext(ctx), masterID, from, to)
}

func (u *bookingUsecase) ClientUpcoming(ctx context.Context, clientID int) ([]entity.Appointment, error) {
	return u.aptRepo.FindUpcomingByClient(u.db.WithContext(ctx), clientID, u.now())
}

// cancelOutcome classifies a cancellation at call time. Inside the one-hour
// window before start the status is late_cancel regardless of actor; the
// actor only selects the regular cancellation event type.
func cancelOutcome(start, now time.Time, actor entity.ActorKind) (entity.AppointmentStatus, string) {
	if start.Sub(now) < time.Hour {
		return entity.AppointmentStatusLateCancel, entity.EventLateCancel
	}
	if actor == entity.ActorMaster {
		return entity.AppointmentStatusCancelled, entity.EventAppointmentCancelledByMaster
	}
	return entity.AppointmentStatusCancelled, entity.EventAppointmentCancelledByClient
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}
