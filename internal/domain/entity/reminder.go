package entity

import (
	"time"
)

// ReminderKind is one of the three fixed offsets before an appointment start
type ReminderKind string

const (
	ReminderKindConfirm24h ReminderKind = "confirm_24h"
	ReminderKindConfirm6h  ReminderKind = "confirm_6h"
	ReminderKindRemind3h   ReminderKind = "remind_3h"
)

// ReminderStatus represents the dispatch status of a reminder
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusCancelled ReminderStatus = "cancelled"
	ReminderStatusFailed    ReminderStatus = "failed"
)

// Reminder is one planned notification for an appointment. Pending reminders
// are cascade-cancelled when the parent leaves the active set.
type Reminder struct {
	ID            int            `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID int            `gorm:"not null;index" json:"appointment_id"`
	RemindAtTs    time.Time      `gorm:"not null;index:ix_reminders_pending" json:"remind_at_ts"`
	Kind          ReminderKind   `gorm:"type:reminder_type;column:type;not null" json:"type"`
	Status        ReminderStatus `gorm:"type:reminder_status;not null;default:'pending';index:ix_reminders_pending,priority:1" json:"status"`
	SentAt        *time.Time     `json:"sent_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Reminder) TableName() string {
	return "reminders"
}
