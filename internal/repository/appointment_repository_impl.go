package repository

import (
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDFull(db *gorm.DB, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Client").Preload("Service").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

// FindConflicting takes row-level locks on every active appointment whose
// [start_ts, end_ts) intersects [start, end). Two transactions probing the
// same slot serialize here; the exclusion constraint remains the backstop.
func (r *appointmentRepository) FindConflicting(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("master_id = ?", masterID).
		Where("status IN ?", entity.ActiveStatuses).
		Where("start_ts < ? AND end_ts > ?", end, start).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveInWindow(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("master_id = ?", masterID).
		Where("status IN ?", entity.ActiveStatuses).
		Where("start_ts >= ? AND start_ts < ?", start, end).
		Order("start_ts").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindForMasterPeriod(db *gorm.DB, masterID int, start, end time.Time) ([]entity.Appointment, error) {
	statuses := []entity.AppointmentStatus{
		entity.AppointmentStatusBooked,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusArrived,
		entity.AppointmentStatusDone,
	}
	var appointments []entity.Appointment
	err := db.Preload("Service").Preload("Client").
		Where("master_id = ?", masterID).
		Where("status IN ?", statuses).
		Where("start_ts >= ? AND start_ts < ?", start, end).
		Order("start_ts").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUpcomingByClient(db *gorm.DB, clientID int, now time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Service").
		Where("client_id = ?", clientID).
		Where("status IN ?", []entity.AppointmentStatus{entity.AppointmentStatusBooked, entity.AppointmentStatusConfirmed}).
		Where("start_ts > ?", now).
		Order("start_ts").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindCurrentActive(db *gorm.DB, masterID int, since time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Service").
		Where("master_id = ?", masterID).
		Where("status IN ?", entity.ActiveStatuses).
		Where("start_ts > ?", since).
		Order("start_ts").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindUnconfirmed(db *gorm.DB, masterID int, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Service").Preload("Client").
		Where("master_id = ?", masterID).
		Where("status = ?", entity.AppointmentStatusBooked).
		Where("confirmed_at IS NULL").
		Where("start_ts > ? AND start_ts < ?", from, to).
		Order("start_ts").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
