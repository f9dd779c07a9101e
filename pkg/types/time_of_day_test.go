package types

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay_RoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s := fmt.Sprintf("%02d:%02d", h, m)
			parsed, err := ParseTimeOfDay(s)
			require.NoError(t, err, s)
			assert.Equal(t, h*60+m, parsed.Minutes())
			assert.Equal(t, s, parsed.String())
		}
	}
}

func TestParseTimeOfDay_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "no leading zero", input: "9:00", wantErr: ErrInvalidTimeFormat},
		{name: "wrong separator", input: "09-00", wantErr: ErrInvalidTimeFormat},
		{name: "letters", input: "ab:cd", wantErr: ErrInvalidTimeFormat},
		{name: "sign", input: "+9:00", wantErr: ErrInvalidTimeFormat},
		{name: "seconds", input: "09:00:00", wantErr: ErrInvalidTimeFormat},
		{name: "hour 24", input: "24:00", wantErr: ErrTimeOutOfRange},
		{name: "minute 60", input: "10:60", wantErr: ErrTimeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimeOfDay(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTimeOfDay(t *testing.T) {
	_, err := NewTimeOfDay(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeOfDay(MinutesPerDay)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	v, err := NewTimeOfDay(1439)
	require.NoError(t, err)
	assert.Equal(t, "23:59", v.String())
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	v := MustParseTimeOfDay("23:00")

	next, err := v.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "23:30", next.String())

	_, err = v.AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeOfDay_IsAligned(t *testing.T) {
	assert.True(t, TimeOfDay(540).IsAligned(30))
	assert.False(t, TimeOfDay(545).IsAligned(30))
	assert.True(t, TimeOfDay(545).IsAligned(5))
	assert.True(t, TimeOfDay(7).IsAligned(0))
}

func TestTimeOfDay_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got := MustParseTimeOfDay("09:30").On(date, loc)

	assert.True(t, time.Date(2025, 3, 10, 9, 30, 0, 0, loc).Equal(got))
	assert.Equal(t, TimeOfDay(570), TimeOfDayFromTime(got))
}

func TestTimeOfDay_Scan(t *testing.T) {
	var v TimeOfDay

	require.NoError(t, v.Scan(int64(600)))
	assert.Equal(t, TimeOfDay(600), v)

	require.NoError(t, v.Scan([]byte("120")))
	assert.Equal(t, TimeOfDay(120), v)

	assert.ErrorIs(t, v.Scan(int64(1440)), ErrTimeOutOfRange)
	assert.ErrorIs(t, v.Scan(3.5), ErrInvalidTimeFormat)

	value, err := TimeOfDay(600).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(600), value)
}
