package availability

import (
	"testing"

	"studiobook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approved(start, end string) models.Booking {
	return models.Booking{
		ApprovalStatus: models.StatusApproved,
		StartTime:      start,
		EndTime:        end,
	}
}

func pending(start, end string) models.Booking {
	return models.Booking{
		ApprovalStatus: models.StatusPending,
		StartTime:      start,
		EndTime:        end,
	}
}

func TestCheckConflictOverlap(t *testing.T) {
	existing := []models.Booking{approved("09:00", "11:00")}

	res, err := CheckConflict("10:00", "12:00", existing)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
	assert.Equal(t, ReasonTimeConflict, res.Reason)
	assert.Len(t, res.Conflicts, 1)
}

func TestCheckConflictBufferTooShort(t *testing.T) {
	existing := []models.Booking{approved("09:00", "11:00")}

	// 12:00 start is only 1 hour after the 11:00 end.
	res, err := CheckConflict("12:00", "14:00", existing)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
}

func TestCheckConflictBufferExactlyThreeHoursPasses(t *testing.T) {
	existing := []models.Booking{approved("09:00", "11:00")}

	// 14:00 start leaves exactly a 3 hour gap.
	res, err := CheckConflict("14:00", "16:00", existing)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflictBufferBeforeExisting(t *testing.T) {
	existing := []models.Booking{approved("14:00", "16:00")}

	// Ending at 12:00 leaves only 2 hours before the 14:00 start.
	res, err := CheckConflict("10:00", "12:00", existing)
	require.NoError(t, err)
	assert.True(t, res.Conflict)

	// Ending at 11:00 leaves exactly 3 hours.
	res, err = CheckConflict("09:00", "11:00", existing)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflictBackToBackFails(t *testing.T) {
	existing := []models.Booking{approved("09:00", "11:00")}

	res, err := CheckConflict("11:00", "13:00", existing)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
}

func TestCheckConflictIgnoresPendingAndDenied(t *testing.T) {
	existing := []models.Booking{
		pending("10:00", "12:00"),
		{ApprovalStatus: models.StatusDenied, StartTime: "10:00", EndTime: "12:00"},
	}

	res, err := CheckConflict("10:00", "12:00", existing)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflictMalformedTime(t *testing.T) {
	_, err := CheckConflict("banana", "12:00", nil)
	assert.Error(t, err)

	_, err = CheckConflict("25:00", "26:00", nil)
	assert.Error(t, err)
}

func TestIsDateFull(t *testing.T) {
	assert.False(t, IsDateFull(nil))

	two := []models.Booking{approved("09:00", "11:00"), approved("14:00", "16:00")}
	assert.False(t, IsDateFull(two))

	three := append(two, approved("17:00", "19:00"))
	assert.True(t, IsDateFull(three))

	// Pending bookings never count toward the cap.
	threePending := []models.Booking{
		pending("09:00", "11:00"), pending("12:00", "14:00"), pending("15:00", "17:00"),
	}
	assert.False(t, IsDateFull(threePending))
}

func TestComputeAvailableSlotsEmptyDay(t *testing.T) {
	slots, err := ComputeAvailableSlots(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00",
		"13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
	}, slots)
}

func TestComputeAvailableSlotsRespectsBuffer(t *testing.T) {
	bookings := []models.Booking{approved("09:00", "11:00")}

	slots, err := ComputeAvailableSlots(bookings, nil)
	require.NoError(t, err)
	// A 2h default session may start no earlier than 3h after the 11:00 end.
	assert.Equal(t, []string{"14:00", "15:00", "16:00", "17:00", "18:00"}, slots)
}

func TestComputeAvailableSlotsDayOff(t *testing.T) {
	day := &models.CalendarDay{DayStatus: models.DayOff}

	slots, err := ComputeAvailableSlots(nil, day)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlotsNoMoreBookings(t *testing.T) {
	day := &models.CalendarDay{DayStatus: models.DayNoMoreBookings}

	// With an approved booking the day is closed.
	slots, err := ComputeAvailableSlots([]models.Booking{approved("09:00", "11:00")}, day)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// With nothing approved the override has no effect yet.
	slots, err = ComputeAvailableSlots(nil, day)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestComputeAvailableSlotsFullDay(t *testing.T) {
	bookings := []models.Booking{
		approved("09:00", "10:00"),
		approved("13:00", "14:00"),
		approved("17:00", "18:00"),
	}

	slots, err := ComputeAvailableSlots(bookings, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCalculateEndTime(t *testing.T) {
	assert.Equal(t, "11:00", CalculateEndTime("09:00", models.TypePersonal, 0))
	assert.Equal(t, "12:00", CalculateEndTime("09:00", models.TypeEvent, 3))
	assert.Equal(t, "13:00", CalculateEndTime("09:00", models.TypeEvent, 6))
	assert.Equal(t, "16:30", CalculateEndTime("14:30", models.TypePersonal, 0))
}

func TestCheckOrderOfRules(t *testing.T) {
	full := []models.Booking{
		approved("09:00", "10:00"),
		approved("13:00", "14:00"),
		approved("17:00", "18:00"),
	}

	// Day off wins over everything.
	v, err := Check("09:00", "11:00", full, &models.CalendarDay{DayStatus: models.DayOff})
	require.NoError(t, err)
	assert.False(t, v.Available)
	assert.Equal(t, ReasonDayOff, v.Reason)

	// Then no_more_bookings.
	v, err = Check("09:00", "11:00", full, &models.CalendarDay{DayStatus: models.DayNoMoreBookings})
	require.NoError(t, err)
	assert.Equal(t, ReasonNoMoreBookings, v.Reason)

	// Then the capacity cap.
	v, err = Check("09:00", "11:00", full, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonDateFull, v.Reason)

	// Then conflicts.
	v, err = Check("10:00", "12:00", []models.Booking{approved("09:00", "11:00")}, nil)
	require.NoError(t, err)
	assert.Equal(t, ReasonTimeConflict, v.Reason)

	// And finally acceptance.
	v, err = Check("14:00", "16:00", []models.Booking{approved("09:00", "11:00")}, nil)
	require.NoError(t, err)
	assert.True(t, v.Available)
	assert.Empty(t, v.Reason)
}
