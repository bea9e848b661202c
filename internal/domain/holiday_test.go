package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHoliday_Matches(t *testing.T) {
	christmas := Holiday{Date: date(2024, 12, 25), Name: "Christmas"}
	newYear := Holiday{Date: date(2020, 1, 1), Name: "New Year", IsRecurring: true}

	assert.True(t, christmas.Matches(date(2024, 12, 25)))
	assert.False(t, christmas.Matches(date(2025, 12, 25)))
	assert.False(t, christmas.Matches(date(2024, 12, 24)))

	assert.True(t, newYear.Matches(date(2020, 1, 1)))
	assert.True(t, newYear.Matches(date(2031, 1, 1)))
	assert.False(t, newYear.Matches(date(2031, 1, 2)))
}

func TestFirstMatchingHoliday_EarliestCreatedWins(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	holidays := []Holiday{
		{ID: 3, Date: date(2024, 5, 1), Name: "Labour Day (exact)", CreatedAt: created.Add(time.Hour)},
		{ID: 2, Date: date(2019, 5, 1), Name: "May Day", IsRecurring: true, CreatedAt: created},
		{ID: 1, Date: date(2018, 5, 1), Name: "Workers Day", IsRecurring: true, CreatedAt: created},
		{ID: 4, Date: date(2024, 5, 2), Name: "Other", CreatedAt: created.Add(-time.Hour)},
	}

	got := FirstMatchingHoliday(holidays, date(2024, 5, 1))
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)

	assert.Nil(t, FirstMatchingHoliday(holidays, date(2024, 5, 3)))

	check := CheckHoliday(holidays, date(2025, 5, 1))
	assert.True(t, check.IsHoliday)
	assert.Equal(t, int64(1), check.Holiday.ID)
}
