package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCallback(t *testing.T) {
	action, arg := splitCallback("menu")
	assert.Equal(t, "menu", action)
	assert.Empty(t, arg)

	action, arg = splitCallback("svc:12")
	assert.Equal(t, "svc", action)
	assert.Equal(t, "12", arg)

	// The argument keeps its own colons intact.
	action, arg = splitCallback("book_confirm:3:2025-03-10T11:00:00Z")
	assert.Equal(t, "book_confirm", action)
	assert.Equal(t, "3:2025-03-10T11:00:00Z", arg)
}

func TestBookConfirmRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)

	data := encodeBookConfirm(3, start)
	assert.Equal(t, "book_confirm:3:2025-03-10T11:00:00Z", data)

	action, arg := splitCallback(data)
	require.Equal(t, "book_confirm", action)

	serviceID, parsed, err := parseBookConfirm(arg)
	require.NoError(t, err)
	assert.Equal(t, 3, serviceID)
	assert.True(t, parsed.Equal(start))
}

func TestParseBookConfirmMalformed(t *testing.T) {
	_, _, err := parseBookConfirm("no-colon")
	assert.Error(t, err)

	_, _, err = parseBookConfirm("abc:2025-03-10T11:00:00Z")
	assert.Error(t, err)

	_, _, err = parseBookConfirm("3:yesterday")
	assert.Error(t, err)
}

func TestSlotRoundTrip(t *testing.T) {
	msk, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, msk)
	parsed, err := parseSlot(splitArg(t, encodeSlot(start)))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(start))
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestDayRoundTrip(t *testing.T) {
	msk, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, msk)
	parsed, err := parseDay(splitArg(t, encodeDay(day, msk)), msk)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(day))
}

func splitArg(t *testing.T, data string) string {
	t.Helper()
	_, arg := splitCallback(data)
	require.NotEmpty(t, arg)
	return arg
}
