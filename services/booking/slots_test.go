package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlots_FullDay(t *testing.T) {
	slots, err := DeriveSlots("9:00 - 17:00")
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.Equal(t, "9:00 AM", slots[0])
	assert.Equal(t, "4:00 PM", slots[7])
}

func TestDeriveSlots_CountMatchesRange(t *testing.T) {
	cases := []struct {
		rangeStr string
		want     int
	}{
		{"0:00 - 1:00", 1},
		{"8:00 - 14:00", 6},
		{"11:00 - 13:00", 2},
		{"12:00 - 18:00", 6},
		{"9:00 - 10:00", 1},
	}
	for _, tc := range cases {
		slots, err := DeriveSlots(tc.rangeStr)
		require.NoError(t, err, tc.rangeStr)
		assert.Len(t, slots, tc.want, tc.rangeStr)
	}
}

func TestDeriveSlots_TwelveHourRendering(t *testing.T) {
	slots, err := DeriveSlots("0:00 - 1:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00 AM"}, slots)

	slots, err = DeriveSlots("11:00 - 14:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00 AM", "12:00 PM", "1:00 PM"}, slots)
}

func TestDeriveSlots_DegenerateRangeIsEmptyNotError(t *testing.T) {
	slots, err := DeriveSlots("13:00 - 13:00")
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = DeriveSlots("15:00 - 9:00")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDeriveSlots_Malformed(t *testing.T) {
	malformed := []string{
		"nine - 17:00",
		"9:00 - five",
		"9:00-17:00",
		"9:00",
		"",
	}
	for _, rangeStr := range malformed {
		_, err := DeriveSlots(rangeStr)
		var availErr *MalformedAvailabilityError
		require.True(t, errors.As(err, &availErr), "expected MalformedAvailabilityError for %q, got %v", rangeStr, err)
	}
}

func TestDeriveSlots_LabelsOnHourBoundaries(t *testing.T) {
	slots, err := DeriveSlots("8:00 - 20:00")
	require.NoError(t, err)
	require.Len(t, slots, 12)
	for i, slot := range slots {
		hour := 8 + i
		adjusted := hour % 12
		if adjusted == 0 {
			adjusted = 12
		}
		period := "AM"
		if hour >= 12 {
			period = "PM"
		}
		assert.Equal(t, fmt.Sprintf("%d:00 %s", adjusted, period), slot)
	}
}
