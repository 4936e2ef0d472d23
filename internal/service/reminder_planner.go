package service

import (
	"time"

	"masterbook/internal/domain/entity"
)

// reminderOffsets maps each reminder kind to its offset before the
// appointment start. Order matters for deterministic row creation.
var reminderOffsets = []struct {
	Offset time.Duration
	Kind   entity.ReminderKind
}{
	{24 * time.Hour, entity.ReminderKindConfirm24h},
	{6 * time.Hour, entity.ReminderKindConfirm6h},
	{3 * time.Hour, entity.ReminderKindRemind3h},
}

// PlanReminders builds the pending reminder rows for an appointment.
// A reminder whose fire time is not strictly after now is never created.
func PlanReminders(appointmentID int, start, now time.Time) []entity.Reminder {
	var reminders []entity.Reminder
	for _, plan := range reminderOffsets {
		remindAt := start.Add(-plan.Offset)
		if !remindAt.After(now) {
			continue
		}
		reminders = append(reminders, entity.Reminder{
			AppointmentID: appointmentID,
			RemindAtTs:    remindAt,
			Kind:          plan.Kind,
			Status:        entity.ReminderStatusPending,
		})
	}
	return reminders
}
