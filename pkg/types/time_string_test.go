package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	ts, err = NewTimeStringFromString(" 9:05 ")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
	assert.True(t, ts.IsZero())

	_, err = NewTimeStringFromString("24:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "same hour", start: "09:00", minutes: 30, want: "09:30"},
		{name: "next hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "last minute of day", start: "23:00", minutes: 59, want: "23:59"},
		{name: "reaches midnight", start: "23:00", minutes: 60, wantErr: ErrCrossesMidnight},
		{name: "crosses midnight", start: "22:00", minutes: 180, wantErr: ErrCrossesMidnight},
		{name: "invalid start", start: "9am", minutes: 10, wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, got.IsBefore(tt.start))
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(a))
	assert.True(t, a.Equal("10:00"))
	assert.Equal(t, 30, a.MinutesUntil(b))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:30:00")))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
