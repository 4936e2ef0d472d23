package usecase

import (
	"testing"
	"time"

	"masterbook/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCancelOutcome_RegularCancelByClient(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)

	status, event := cancelOutcome(start, now, entity.ActorClient)
	assert.Equal(t, entity.AppointmentStatusCancelled, status)
	assert.Equal(t, entity.EventAppointmentCancelledByClient, event)
}

func TestCancelOutcome_RegularCancelByMaster(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(26 * time.Hour)

	status, event := cancelOutcome(start, now, entity.ActorMaster)
	assert.Equal(t, entity.AppointmentStatusCancelled, status)
	assert.Equal(t, entity.EventAppointmentCancelledByMaster, event)
}

func TestCancelOutcome_LateCancelInsideHour(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(30 * time.Minute)

	status, event := cancelOutcome(start, now, entity.ActorClient)
	assert.Equal(t, entity.AppointmentStatusLateCancel, status)
	assert.Equal(t, entity.EventLateCancel, event)
}

func TestCancelOutcome_LateCancelIndependentOfActor(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(10 * time.Minute)

	status, event := cancelOutcome(start, now, entity.ActorMaster)
	assert.Equal(t, entity.AppointmentStatusLateCancel, status)
	assert.Equal(t, entity.EventLateCancel, event)
}

func TestCancelOutcome_ExactlyOneHourIsRegular(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	status, _ := cancelOutcome(start, now, entity.ActorClient)
	assert.Equal(t, entity.AppointmentStatusCancelled, status)
}

func TestCancelOutcome_PastStartIsLate(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	start := now.Add(-15 * time.Minute)

	status, _ := cancelOutcome(start, now, entity.ActorClient)
	assert.Equal(t, entity.AppointmentStatusLateCancel, status)
}

func TestIsExclusionViolation(t *testing.T) {
	assert.True(t, isExclusionViolation(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, isExclusionViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isExclusionViolation(assert.AnError))
	assert.False(t, isExclusionViolation(nil))
}
