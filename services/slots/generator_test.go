package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/models"
)

var testDay = time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)

func nineToSix() models.WorkingHours {
	return models.WorkingHours{Start: "9:00 AM", End: "6:00 PM"}
}

// 540-minute span, 60-minute service, 15-minute buffer: slots step by 75
// minutes and exactly 7 fit.
func TestGenerateDaySlotsStandardDay(t *testing.T) {
	got, err := GenerateDaySlots(testDay, nineToSix(), 60, 15)
	require.NoError(t, err)
	require.Len(t, got, 7)

	assert.Equal(t, "9:00 AM", got[0].StartTime)
	assert.Equal(t, "10:00 AM", got[0].EndTime)
	assert.Equal(t, "10:15 AM", got[1].StartTime)
	assert.Equal(t, "4:30 PM", got[6].StartTime)
	assert.Equal(t, "5:30 PM", got[6].EndTime)
}

// Every candidate lies inside working hours and consecutive candidates are
// separated by at least the buffer.
func TestGenerateDaySlotsContainmentAndSpacing(t *testing.T) {
	const duration, buffer = 45, 10
	got, err := GenerateDaySlots(testDay, nineToSix(), duration, buffer)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	startBound, _ := ParseClock("9:00 AM")
	endBound, _ := ParseClock("6:00 PM")

	for i, c := range got {
		start, err := ParseClock(c.StartTime)
		require.NoError(t, err)
		end, err := ParseClock(c.EndTime)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, start, startBound)
		assert.LessOrEqual(t, end, endBound)
		assert.Equal(t, duration, end-start)
		assert.Equal(t, c.StartInstant.Add(time.Duration(duration)*time.Minute), c.EndInstant)

		if i > 0 {
			prevEnd, _ := ParseClock(got[i-1].EndTime)
			assert.GreaterOrEqual(t, start, prevEnd+buffer)
		}
	}
}

// Duration exceeding the working window yields no slots at all.
func TestGenerateDaySlotsEmptyDay(t *testing.T) {
	got, err := GenerateDaySlots(testDay, nineToSix(), 600, 15)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A buffer large enough that only one slot fits yields exactly one.
func TestGenerateDaySlotsSingleSlot(t *testing.T) {
	got, err := GenerateDaySlots(testDay, nineToSix(), 60, 480)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9:00 AM", got[0].StartTime)
}

// Zero buffer packs slots back to back.
func TestGenerateDaySlotsZeroBuffer(t *testing.T) {
	got, err := GenerateDaySlots(testDay, models.WorkingHours{Start: "9:00 AM", End: "12:00 PM"}, 60, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "10:00 AM", got[1].StartTime)
	assert.Equal(t, "12:00 PM", got[2].EndTime)
}

func TestGenerateDaySlotsRejectsBadInput(t *testing.T) {
	var ve *ValidationError

	_, err := GenerateDaySlots(testDay, nineToSix(), 0, 15)
	require.ErrorAs(t, err, &ve)

	_, err = GenerateDaySlots(testDay, nineToSix(), 60, -1)
	require.ErrorAs(t, err, &ve)

	_, err = GenerateDaySlots(testDay, models.WorkingHours{Start: "6:00 PM", End: "9:00 AM"}, 60, 15)
	require.ErrorAs(t, err, &ve)

	var fe *FormatError
	_, err = GenerateDaySlots(testDay, models.WorkingHours{Start: "nine", End: "6:00 PM"}, 60, 15)
	require.ErrorAs(t, err, &fe)
}
