package usecase

import (
	"testing"
	"time"

	"masterbook/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msk = mustLoadLocation("Europe/Moscow")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func mskTime(y int, mo time.Month, d, h, min int) time.Time {
	return time.Date(y, mo, d, h, min, 0, 0, msk).UTC()
}

func testWindow() (time.Time, time.Time) {
	// 2025-03-10, 09:00–20:00 Europe/Moscow.
	return mskTime(2025, 3, 10, 9, 0), mskTime(2025, 3, 10, 20, 0)
}

func TestComputeSlots_EmptyDay(t *testing.T) {
	workStart, workEnd := testWindow()
	minStart := mskTime(2025, 3, 10, 9, 0) // lead time already applied

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, nil, nil)

	// Grid stepped by 40 minutes: 09:00, 09:40, ..., 19:00.
	require.Len(t, slots, 16)
	assert.Equal(t, mskTime(2025, 3, 10, 9, 0), slots[0])
	assert.Equal(t, mskTime(2025, 3, 10, 9, 40), slots[1])
	assert.Equal(t, mskTime(2025, 3, 10, 19, 0), slots[15])

	// Chronological order.
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}

func TestComputeSlots_MinLeadRemovesEarlySlots(t *testing.T) {
	workStart, workEnd := testWindow()
	// now = 08:30 MSK, one hour lead → everything before 09:30 is out.
	minStart := mskTime(2025, 3, 10, 9, 30)

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, nil, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, mskTime(2025, 3, 10, 9, 40), slots[0])
}

func TestComputeSlots_MinLeadBoundaryInclusive(t *testing.T) {
	workStart, workEnd := testWindow()
	// A slot starting exactly at now+lead is admissible.
	minStart := mskTime(2025, 3, 10, 9, 0)

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, nil, nil)
	assert.Equal(t, mskTime(2025, 3, 10, 9, 0), slots[0])
}

func TestComputeSlots_BookedSlotExcluded(t *testing.T) {
	workStart, workEnd := testWindow()
	minStart := workStart

	booked := []entity.Appointment{{
		StartTs: mskTime(2025, 3, 10, 11, 0),
		EndTs:   mskTime(2025, 3, 10, 11, 30),
		Status:  entity.AppointmentStatusBooked,
	}}

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, booked, nil)

	assert.NotContains(t, slots, mskTime(2025, 3, 10, 11, 0))
	// Neighbours separated by exactly the buffer stay bookable.
	assert.Contains(t, slots, mskTime(2025, 3, 10, 10, 20))
	assert.Contains(t, slots, mskTime(2025, 3, 10, 11, 40))
}

func TestComputeSlots_OffGridBookingShadowsNeighbours(t *testing.T) {
	workStart, workEnd := testWindow()
	minStart := workStart

	// 11:10–11:40 sits between grid points; both 11:00 and 11:40
	// candidates now violate the buffered interval.
	booked := []entity.Appointment{{
		StartTs: mskTime(2025, 3, 10, 11, 10),
		EndTs:   mskTime(2025, 3, 10, 11, 40),
		Status:  entity.AppointmentStatusConfirmed,
	}}

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, booked, nil)

	assert.NotContains(t, slots, mskTime(2025, 3, 10, 11, 0))
	assert.NotContains(t, slots, mskTime(2025, 3, 10, 11, 40))
	assert.Contains(t, slots, mskTime(2025, 3, 10, 10, 20))
	assert.Contains(t, slots, mskTime(2025, 3, 10, 12, 20))
}

func TestComputeSlots_BlackoutExcludesOverlaps(t *testing.T) {
	workStart, workEnd := testWindow()
	minStart := workStart

	blackouts := []entity.Blackout{{
		StartTs: mskTime(2025, 3, 10, 14, 0),
		EndTs:   mskTime(2025, 3, 10, 16, 0),
	}}

	slots := computeSlots(workStart, workEnd, 30, 10, minStart, nil, blackouts)

	// 13:40 ends 14:10, inside the blackout; 15:40 starts before 16:00.
	assert.NotContains(t, slots, mskTime(2025, 3, 10, 13, 40))
	assert.NotContains(t, slots, mskTime(2025, 3, 10, 14, 20))
	assert.NotContains(t, slots, mskTime(2025, 3, 10, 15, 0))
	assert.NotContains(t, slots, mskTime(2025, 3, 10, 15, 40))
	assert.Contains(t, slots, mskTime(2025, 3, 10, 13, 0))
	assert.Contains(t, slots, mskTime(2025, 3, 10, 16, 20))
}

func TestComputeSlots_BlackoutCoversWholeDay(t *testing.T) {
	workStart, workEnd := testWindow()

	blackouts := []entity.Blackout{{
		StartTs: workStart,
		EndTs:   workEnd,
	}}

	slots := computeSlots(workStart, workEnd, 30, 10, workStart, nil, blackouts)
	assert.Empty(t, slots)
}

func TestComputeSlots_LastSlotMustFitWindow(t *testing.T) {
	workStart, workEnd := testWindow()

	slots := computeSlots(workStart, workEnd, 30, 10, workStart, nil, nil)

	for _, s := range slots {
		assert.False(t, s.Add(30*time.Minute).After(workEnd), "slot %s spills past closing", s)
	}
}

func TestWorkWindow_ResolvesWallClockOnce(t *testing.T) {
	master := &entity.Master{
		Timezone:      "Europe/Moscow",
		WorkStartTime: "09:00:00",
		WorkEndTime:   "20:00:00",
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, msk)
	open, close, err := workWindow(master, date)
	require.NoError(t, err)

	// Moscow is UTC+3 year-round.
	assert.Equal(t, time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), close)
	assert.Equal(t, 11*time.Hour, close.Sub(open))
}

func TestWorkWindow_DSTSpringForward(t *testing.T) {
	// 2025-03-09 America/New_York: clocks jump 02:00 → 03:00. Both
	// endpoints resolve through local wall-clock once, so the window is
	// an hour shorter in absolute terms but the grid stays monotonic.
	master := &entity.Master{
		Timezone:      "America/New_York",
		WorkStartTime: "01:00:00",
		WorkEndTime:   "05:00:00",
	}

	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	open, close, err := workWindow(master, date)
	require.NoError(t, err)
	assert.True(t, close.After(open))
	assert.Equal(t, 3*time.Hour, close.Sub(open))

	slots := computeSlots(open, close, 30, 10, open, nil, nil)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}

func TestParseWallClock(t *testing.T) {
	h, m, err := parseWallClock("09:00:00")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 0, m)

	h, m, err = parseWallClock("20:30")
	require.NoError(t, err)
	assert.Equal(t, 20, h)
	assert.Equal(t, 30, m)

	_, _, err = parseWallClock("not-a-time")
	assert.Error(t, err)
}
