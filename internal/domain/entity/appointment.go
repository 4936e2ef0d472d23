package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked     AppointmentStatus = "booked"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusArrived    AppointmentStatus = "arrived"
	AppointmentStatusDone       AppointmentStatus = "done"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusLateCancel AppointmentStatus = "late_cancel"
)

// ActiveStatuses are the statuses considered for slot overlap. The store
// exclusion constraint filters on the same set plus done (i.e. everything
// except cancelled/late_cancel).
var ActiveStatuses = []AppointmentStatus{
	AppointmentStatusBooked,
	AppointmentStatusConfirmed,
	AppointmentStatusArrived,
}

// Appointment is the central entity: one client booked with one master
// for the half-open interval [StartTs, EndTs).
type Appointment struct {
	ID            int               `gorm:"primaryKey;autoIncrement" json:"id"`
	MasterID      int               `gorm:"not null;index:ix_appointments_master_start" json:"master_id"`
	ClientID      int               `gorm:"not null;index" json:"client_id"`
	ServiceID     int               `gorm:"not null" json:"service_id"`
	StartTs       time.Time         `gorm:"not null;index:ix_appointments_master_start" json:"start_ts"`
	EndTs         time.Time         `gorm:"not null" json:"end_ts"`
	Status        AppointmentStatus `gorm:"type:appointment_status;not null;default:'booked'" json:"status"`
	ConfirmedAt   *time.Time        `json:"confirmed_at,omitempty"`
	CancelledAt   *time.Time        `json:"cancelled_at,omitempty"`
	PriceSnapshot decimal.Decimal   `gorm:"type:numeric(10,2);not null" json:"price_snapshot"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Master    Master     `gorm:"foreignKey:MasterID" json:"master,omitempty"`
	Client    Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Service   Service    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Reminders []Reminder `gorm:"foreignKey:AppointmentID" json:"reminders,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive checks whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusBooked ||
		a.Status == AppointmentStatusConfirmed ||
		a.Status == AppointmentStatusArrived
}

// IsUpcoming checks whether the appointment can still be confirmed or cancelled.
func (a *Appointment) IsUpcoming() bool {
	return a.Status == AppointmentStatusBooked || a.Status == AppointmentStatusConfirmed
}

// IsTerminal checks whether the appointment reached a final status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusDone ||
		a.Status == AppointmentStatusCancelled ||
		a.Status == AppointmentStatusLateCancel
}

// IsCancelled checks for either cancellation status.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusLateCancel
}
