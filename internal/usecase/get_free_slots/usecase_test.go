package get_free_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCalendar struct {
	holidays []domain.Holiday
	err      error
}

func (c *fakeCalendar) IsHoliday(_ context.Context, date time.Time) (*domain.HolidayCheck, error) {
	if c.err != nil {
		return nil, c.err
	}
	check := domain.CheckHoliday(c.holidays, date)
	return &check, nil
}

type fakeBlocks struct {
	blocks []*domain.ScheduleBlock
	err    error
}

func (f *fakeBlocks) GetActiveByDate(_ context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.ScheduleBlock
	for _, b := range f.blocks {
		if domain.SameDate(b.Date, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeEnquiries struct {
	enquiries []*domain.Enquiry
}

func (f *fakeEnquiries) GetBlockingByDate(context.Context, time.Time) ([]*domain.Enquiry, error) {
	return f.enquiries, nil
}

type fixture struct {
	calendar  *fakeCalendar
	blocks    *fakeBlocks
	enquiries *fakeEnquiries
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hours, err := domain.NewWorkingHours("09:00", "17:00")
	require.NoError(t, err)

	f := &fixture{
		calendar:  &fakeCalendar{},
		blocks:    &fakeBlocks{},
		enquiries: &fakeEnquiries{},
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "schedule_lookup"})
	f.uc = NewUseCase(f.calendar, f.blocks, f.enquiries, breaker, Settings{WorkingHours: hours}, nopLogger{})
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func block(id int64, date time.Time, start string, duration int, status domain.ScheduleBlockStatus) *domain.ScheduleBlock {
	return &domain.ScheduleBlock{
		ID:              id,
		Date:            date,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Title:           "Blocked Time",
		Status:          status,
	}
}

func accepted(id int64, date time.Time, start, end string) *domain.Enquiry {
	s, e := types.TimeString(start), types.TimeString(end)
	return &domain.Enquiry{
		ID:            id,
		CustomerName:  "Customer",
		WorkType:      domain.WorkTypePlaning,
		RequestedDate: date,
		RequestedTime: s,
		Status:        domain.StatusTimeAccepted,
		AcceptedDate:  &date,
		AcceptedStart: &s,
		AcceptedEnd:   &e,
	}
}

func slots(free []domain.FreeSlot) [][2]string {
	out := make([][2]string, 0, len(free))
	for _, s := range free {
		out = append(out, [2]string{s.Start.String(), s.End.String()})
	}
	return out
}

func TestExecute_EmptyDay(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.Execute(context.Background(), &Request{Date: day(2024, 7, 1), DurationMinutes: 60})
	require.NoError(t, err)

	assert.False(t, res.IsHoliday)
	assert.Empty(t, res.Booked)
	require.Len(t, res.Free, 1)
	assert.Equal(t, 480, res.Free[0].DurationMinutes)
}

func TestExecute_BlocksAndEnquiries(t *testing.T) {
	f := newFixture(t)
	date := day(2024, 7, 1)
	f.blocks.blocks = []*domain.ScheduleBlock{
		block(1, date, "14:00", 120, domain.BlockStatusBlocked),
		block(2, date, "11:00", 60, domain.BlockStatusCancelled),
	}
	f.enquiries.enquiries = []*domain.Enquiry{accepted(10, date, "09:00", "10:00")}

	res, err := f.uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 60})
	require.NoError(t, err)

	require.Len(t, res.Booked, 2)
	assert.Equal(t, domain.ConflictSourceEnquiry, res.Booked[0].Source)
	assert.Equal(t, domain.ConflictSourceSchedule, res.Booked[1].Source)
	assert.Equal(t, [][2]string{{"10:00", "14:00"}, {"16:00", "17:00"}}, slots(res.Free))

	res, err = f.uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"10:00", "14:00"}}, slots(res.Free))
}

func TestExecute_OverlappingAndOutsideHours(t *testing.T) {
	f := newFixture(t)
	date := day(2024, 7, 1)
	f.blocks.blocks = []*domain.ScheduleBlock{
		block(1, date, "08:00", 120, domain.BlockStatusBooked),
		block(2, date, "09:30", 90, domain.BlockStatusBlocked),
		block(3, date, "10:00", 30, domain.BlockStatusBlocked),
		block(4, date, "16:30", 120, domain.BlockStatusBlocked),
	}

	res, err := f.uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"11:00", "16:30"}}, slots(res.Free))
}

func TestExecute_Holiday(t *testing.T) {
	f := newFixture(t)
	f.calendar.holidays = []domain.Holiday{{ID: 1, Date: day(2024, 12, 25), Name: "Christmas"}}

	res, err := f.uc.Execute(context.Background(), &Request{Date: day(2024, 12, 25), DurationMinutes: 60})
	require.NoError(t, err)

	assert.True(t, res.IsHoliday)
	require.NotNil(t, res.Holiday)
	assert.Equal(t, "Christmas", res.Holiday.Name)
	assert.Empty(t, res.Free)
}

func TestExecute_Degraded(t *testing.T) {
	f := newFixture(t)
	date := day(2024, 7, 1)
	f.calendar.err = errors.New("redis down")
	f.blocks.err = errors.New("db down")
	f.enquiries.enquiries = []*domain.Enquiry{accepted(10, date, "09:00", "13:00")}

	res, err := f.uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 60})
	require.NoError(t, err)

	assert.True(t, res.Degraded)
	assert.ElementsMatch(t, []string{warnHolidayUnavailable, warnScheduleUnavailable}, res.Warnings)
	assert.Equal(t, [][2]string{{"13:00", "17:00"}}, slots(res.Free))
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), &Request{Date: day(2024, 7, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
