package repository

import (
	"time"

	"masterbook/internal/domain/entity"
	domainRepo "masterbook/internal/domain/repository"

	"gorm.io/gorm"
)

type reminderRepository struct{}

func NewReminderRepository() domainRepo.ReminderRepository {
	return &reminderRepository{}
}

func (r *reminderRepository) CreateBatch(db *gorm.DB, reminders []entity.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return db.Create(&reminders).Error
}

func (r *reminderRepository) FindDue(db *gorm.DB, now time.Time) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := db.Preload("Appointment").Preload("Appointment.Client").Preload("Appointment.Service").
		Where("status = ?", entity.ReminderStatusPending).
		Where("remind_at_ts <= ?", now).
		Order("remind_at_ts").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) FindByAppointment(db *gorm.DB, appointmentID int) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := db.Where("appointment_id = ?", appointmentID).Order("remind_at_ts").Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) Save(db *gorm.DB, reminder *entity.Reminder) error {
	return db.Save(reminder).Error
}

func (r *reminderRepository) UpdateStatus(db *gorm.DB, id int, status entity.ReminderStatus, sentAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if sentAt != nil {
		updates["sent_at"] = *sentAt
	}
	return db.Model(&entity.Reminder{}).Where("id = ?", id).Updates(updates).Error
}

func (r *reminderRepository) CancelPending(db *gorm.DB, appointmentID int) (int64, error) {
	result := db.Model(&entity.Reminder{}).
		Where("appointment_id = ? AND status = ?", appointmentID, entity.ReminderStatusPending).
		Update("status", entity.ReminderStatusCancelled)
	return result.RowsAffected, result.Error
}
