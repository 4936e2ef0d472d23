package repository

import (
	"time"

	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	// FindByIDFull loads the appointment with client and service preloaded.
	FindByIDFull(db *gorm.DB, id int) (*entity.Appointment, error)
	Save(db *gorm.DB, appointment *entity.Appointment) error
	// FindConflicting locks (FOR UPDATE) every active appointment of the
	// master whose interval intersects [start, end). Serializes concurrent
	// bookings of the same slot ahead of the exclusion constraint.
	FindConflicting(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error)
	// FindActiveInWindow returns active appointments with start_ts in [start, end).
	FindActiveInWindow(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error)
	// FindForMasterPeriod returns booked/confirmed/arrived/done appointments
	// for schedule views, ordered by start.
	FindForMasterPeriod(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error)
	FindUpcomingByClient(db *gorm.DB, clientID int, now time.Time) ([]entity.Appointment, error)
	FindCurrentActive(db *gorm.DB, masterID int, since time.Time) ([]entity.Appointment, error)
	FindUnconfirmed(db *gorm.DB, masterID int, from, to time.Time) ([]entity.Appointment, error)
}
