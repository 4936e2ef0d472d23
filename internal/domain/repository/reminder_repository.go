package repository

import (
	"time"

	"masterbook/internal/domain/entity"

	"gorm.io/gorm"
)

type ReminderRepository interface {
	CreateBatch(db *gorm.DB, reminders []entity.Reminder) error
	// FindDue returns pending reminders with remind_at_ts <= now, parent
	// appointment preloaded, ordered by remind_at_ts.
	FindDue(db *gorm.DB, now time.Time) ([]entity.Reminder, error)
	FindByAppointment(db *gorm.DB, appointmentID int) ([]entity.Reminder, error)
	Save(db *gorm.DB, reminder *entity.Reminder) error
	// UpdateStatus moves one reminder to a terminal status without touching
	// its preloaded associations.
	UpdateStatus(db *gorm.DB, id int, status entity.ReminderStatus, sentAt *time.Time) error
	// CancelPending flips every pending reminder of the appointment to
	// cancelled and returns the number of rows affected.
	CancelPending(db *gorm.DB, appointmentID int) (int64, error)
}
