package service

import (
	"testing"
	"time"

	"masterbook/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanReminders_AllInFuture(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(25 * time.Hour)

	reminders := PlanReminders(42, start, now)

	require.Len(t, reminders, 3)
	assert.Equal(t, entity.ReminderKindConfirm24h, reminders[0].Kind)
	assert.Equal(t, start.Add(-24*time.Hour), reminders[0].RemindAtTs)
	assert.Equal(t, entity.ReminderKindConfirm6h, reminders[1].Kind)
	assert.Equal(t, entity.ReminderKindRemind3h, reminders[2].Kind)
	for _, r := range reminders {
		assert.Equal(t, 42, r.AppointmentID)
		assert.Equal(t, entity.ReminderStatusPending, r.Status)
	}
}

func TestPlanReminders_SkipsPastOffsets(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// 5 hours ahead: the 24h and 6h offsets already passed.
	reminders := PlanReminders(1, now.Add(5*time.Hour), now)
	require.Len(t, reminders, 1)
	assert.Equal(t, entity.ReminderKindRemind3h, reminders[0].Kind)
}

func TestPlanReminders_NothingForImminentStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	reminders := PlanReminders(1, now.Add(30*time.Minute), now)
	assert.Empty(t, reminders)
}

func TestPlanReminders_BoundaryIsExclusive(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	// Fire time exactly equal to now must not be planned.
	reminders := PlanReminders(1, now.Add(3*time.Hour), now)
	assert.Empty(t, reminders)
}
