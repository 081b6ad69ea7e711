package garmin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetailTitle(t *testing.T) {
	// a Thursday
	now := time.Date(2024, 7, 4, 15, 45, 0, 0, time.UTC)

	cases := []struct {
		name     string
		text     string
		expected time.Time
	}{
		{
			name:     "today with time",
			text:     "Running today at 8:30 am",
			expected: time.Date(2024, 7, 4, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "yesterday with time",
			text:     "Yoga yesterday at 6:05 PM",
			expected: time.Date(2024, 7, 3, 18, 5, 0, 0, time.UTC),
		},
		{
			name:     "same weekday resolves to today",
			text:     "Running on Thursday at 5:05 pm",
			expected: time.Date(2024, 7, 4, 17, 5, 0, 0, time.UTC),
		},
		{
			name:     "earlier weekday within the week",
			text:     "Strength on Monday at 7:00 am",
			expected: time.Date(2024, 7, 1, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "weekday after today wraps to last week",
			text:     "Running on Friday at 9:00 am",
			expected: time.Date(2024, 6, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "absolute date full month",
			text:     "Berlin Running on July 4, 2024 at 8:30 AM",
			expected: time.Date(2024, 7, 4, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "absolute date abbreviated month",
			text:     "Running on Jun 12, 2023 at 12:15 pm",
			expected: time.Date(2023, 6, 12, 12, 15, 0, 0, time.UTC),
		},
		{
			name:     "midnight boundary am",
			text:     "Running today at 12:05 am",
			expected: time.Date(2024, 7, 4, 0, 5, 0, 0, time.UTC),
		},
		{
			name:     "no time keeps midnight",
			text:     "Hiking on July 1, 2024",
			expected: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDetailTitle(tc.text, now)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseDetailTitle_Unrecognized(t *testing.T) {
	now := time.Date(2024, 7, 4, 15, 45, 0, 0, time.UTC)
	_, err := ParseDetailTitle("Running somewhere at some point", now)
	require.ErrorIs(t, err, ErrUnrecognizedDate)
}

func TestParseListDate(t *testing.T) {
	got, err := ParseListDate("Jul 4 2024", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC), got)

	// the date cell renders as stacked spans
	got, err = ParseListDate("Jun\n12\n2023", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseListDate("not a date", time.UTC)
	require.ErrorIs(t, err, ErrUnrecognizedDate)
}
