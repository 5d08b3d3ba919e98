package availability

import (
	"testing"

	"localpro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:00", 0, true},
		{"9am", 0, true},
		{"09", 0, true},
		{"09:00:00", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseSlot(t *testing.T) {
	start, end, err := parseSlot(models.TimeSlot{Start: "09:30", End: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, 570, start)
	assert.Equal(t, 1020, end)

	_, _, err = parseSlot(models.TimeSlot{Start: "17:00", End: "09:00"})
	assert.Error(t, err, "inverted slots are rejected")

	_, _, err = parseSlot(models.TimeSlot{Start: "10:00", End: "10:00"})
	assert.Error(t, err, "zero-length slots are rejected")

	_, _, err = parseSlot(models.TimeSlot{Start: "bogus", End: "10:00"})
	assert.Error(t, err)
}
