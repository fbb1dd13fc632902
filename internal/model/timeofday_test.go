package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"23:00", TimeOfDay{23, 0}},
		{"07:30", TimeOfDay{7, 30}},
		{"0:05", TimeOfDay{0, 5}},
		{"22:45:59", TimeOfDay{22, 45}}, // seconds accepted and ignored
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTimeOfDayRejectsBadInput(t *testing.T) {
	bad := []string{
		"", "midnight", "24:00", "12:60", "-1:30",
		"12:34xyz", "12:34 ", " 12:34", "12:3", "12:34:567", "12:34:56:78",
	}
	for _, in := range bad {
		_, err := ParseTimeOfDay(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrValidation), in)
	}
}

func TestTimeOfDayMinutes(t *testing.T) {
	assert.Equal(t, 0, TimeOfDay{0, 0}.Minutes())
	assert.Equal(t, 1380, TimeOfDay{23, 0}.Minutes())
	assert.Equal(t, 455, TimeOfDay{7, 35}.Minutes())
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(TimeOfDay{7, 5})
	require.NoError(t, err)
	assert.Equal(t, `"07:05"`, string(b))

	var got TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"22:45"`), &got))
	assert.Equal(t, TimeOfDay{22, 45}, got)

	assert.Error(t, json.Unmarshal([]byte(`1345`), &got))
}

func TestTimeOfDaySQLRoundTrip(t *testing.T) {
	v, err := TimeOfDay{6, 0}.Value()
	require.NoError(t, err)
	assert.Equal(t, "06:00", v)

	var got TimeOfDay
	require.NoError(t, got.Scan("06:00"))
	assert.Equal(t, TimeOfDay{6, 0}, got)

	require.NoError(t, got.Scan([]byte("18:15")))
	assert.Equal(t, TimeOfDay{18, 15}, got)

	assert.Error(t, got.Scan(42))
}
