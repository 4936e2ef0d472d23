package scheduler

import (
	"testing"
	"time"

	"masterbook/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func reminderWith(kind entity.ReminderKind, status entity.AppointmentStatus, confirmedAt *time.Time) *entity.Reminder {
	return &entity.Reminder{
		Kind:   kind,
		Status: entity.ReminderStatusPending,
		Appointment: entity.Appointment{
			Status:      status,
			ConfirmedAt: confirmedAt,
		},
	}
}

func TestClassifyReminder_ActiveParentSends(t *testing.T) {
	r := reminderWith(entity.ReminderKindConfirm24h, entity.AppointmentStatusBooked, nil)
	assert.Equal(t, actionSend, classifyReminder(r))
}

func TestClassifyReminder_CancelledParentCancels(t *testing.T) {
	for _, status := range []entity.AppointmentStatus{
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusLateCancel,
		entity.AppointmentStatusArrived,
		entity.AppointmentStatusDone,
	} {
		r := reminderWith(entity.ReminderKindConfirm24h, status, nil)
		assert.Equal(t, actionCancel, classifyReminder(r), "status %s", status)
	}
}

func TestClassifyReminder_Confirm6hSuppressedWhenConfirmed(t *testing.T) {
	confirmed := time.Now().UTC()
	r := reminderWith(entity.ReminderKindConfirm6h, entity.AppointmentStatusConfirmed, &confirmed)
	assert.Equal(t, actionCancel, classifyReminder(r))

	r = reminderWith(entity.ReminderKindConfirm6h, entity.AppointmentStatusBooked, nil)
	assert.Equal(t, actionSend, classifyReminder(r))
}

func TestClassifyReminder_Remind3hOnlyForConfirmed(t *testing.T) {
	r := reminderWith(entity.ReminderKindRemind3h, entity.AppointmentStatusBooked, nil)
	assert.Equal(t, actionCancel, classifyReminder(r))

	confirmed := time.Now().UTC()
	r = reminderWith(entity.ReminderKindRemind3h, entity.AppointmentStatusConfirmed, &confirmed)
	assert.Equal(t, actionSend, classifyReminder(r))
}

func TestClassifyReminder_Confirm24hSendsEvenIfConfirmed(t *testing.T) {
	confirmed := time.Now().UTC()
	r := reminderWith(entity.ReminderKindConfirm24h, entity.AppointmentStatusConfirmed, &confirmed)
	assert.Equal(t, actionSend, classifyReminder(r))
}

func TestSentEventType(t *testing.T) {
	assert.Equal(t, entity.EventReminderSent24h, sentEventType(entity.ReminderKindConfirm24h))
	assert.Equal(t, entity.EventReminderSent6h, sentEventType(entity.ReminderKindConfirm6h))
	assert.Equal(t, entity.EventReminderSent3h, sentEventType(entity.ReminderKindRemind3h))
}
