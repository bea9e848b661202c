package holidays

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-TimberService/internal/service/holidays/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	holidays  []domain.Holiday
	nextID    int64
	failTimes int
	calls     int
}

func (r *fakeRepo) fail() error {
	r.calls++
	if r.failTimes > 0 {
		r.failTimes--
		return errors.New("connection reset")
	}
	return nil
}

func (r *fakeRepo) Create(_ context.Context, h *domain.Holiday) (*domain.Holiday, error) {
	for _, existing := range r.holidays {
		if domain.SameDate(existing.Date, h.Date) {
			return nil, holidayRepo.ErrHolidayAlreadyExists
		}
	}
	r.nextID++
	created := *h
	created.ID = r.nextID
	created.CreatedAt = time.Date(2024, 1, 1, 0, 0, int(r.nextID), 0, time.UTC)
	r.holidays = append(r.holidays, created)
	return &created, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Holiday, error) {
	for _, h := range r.holidays {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, holidayRepo.ErrHolidayNotFound
}

func (r *fakeRepo) List(context.Context) ([]domain.Holiday, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	return append([]domain.Holiday(nil), r.holidays...), nil
}

func (r *fakeRepo) GetMatching(_ context.Context, date time.Time) ([]domain.Holiday, error) {
	if err := r.fail(); err != nil {
		return nil, err
	}
	var out []domain.Holiday
	for _, h := range r.holidays {
		if h.Matches(date) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for i, h := range r.holidays {
		if h.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return holidayRepo.ErrHolidayNotFound
}

type fakeCache struct {
	holidays    []domain.Holiday
	found       bool
	err         error
	invalidated int
}

func (c *fakeCache) GetAll(context.Context) ([]domain.Holiday, bool, error) {
	return c.holidays, c.found, c.err
}

func (c *fakeCache) SetAll(_ context.Context, h []domain.Holiday) error {
	if c.err != nil {
		return c.err
	}
	c.holidays, c.found = h, true
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidated++
	c.holidays, c.found = nil, false
	return c.err
}

func newTestService(repo *fakeRepo, cache *fakeCache) *Service {
	return NewService(repo, cache, time.Millisecond, nopLogger{})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_CreateAndCheck(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "2024-12-25", Name: " Christmas "})
	require.NoError(t, err)
	assert.Equal(t, "Christmas", created.Name)
	assert.Equal(t, 1, cache.invalidated)

	check, err := svc.IsHoliday(ctx, date(2024, 12, 25))
	require.NoError(t, err)
	assert.True(t, check.IsHoliday)
	assert.Equal(t, created.ID, check.Holiday.ID)
	assert.True(t, cache.found, "cache is filled on miss")

	check, err = svc.IsHoliday(ctx, date(2025, 12, 25))
	require.NoError(t, err)
	assert.False(t, check.IsHoliday, "non-recurring holiday only matches its own year")
}

func TestService_RecurringHolidayAnyYear(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeCache{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "2020-01-01", Name: "New Year", IsRecurring: true})
	require.NoError(t, err)

	for _, year := range []int{2019, 2024, 2031} {
		check, err := svc.IsHolidayFresh(ctx, date(year, 1, 1))
		require.NoError(t, err)
		assert.True(t, check.IsHoliday, "year %d", year)
	}

	check, err := svc.IsHolidayFresh(ctx, date(2024, 1, 2))
	require.NoError(t, err)
	assert.False(t, check.IsHoliday)
}

func TestService_CreateValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeCache{})

	tests := []struct {
		name string
		req  models.CreateHolidayRequest
	}{
		{name: "missing date", req: models.CreateHolidayRequest{Name: "X"}},
		{name: "bad date", req: models.CreateHolidayRequest{Date: "25.12.2024", Name: "X"}},
		{name: "blank name", req: models.CreateHolidayRequest{Date: "2024-12-25", Name: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_DuplicateDateIsConflict(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeCache{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "2024-12-25", Name: "Christmas"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateHolidayRequest{Date: "2024-12-25", Name: "Other"})
	assert.ErrorIs(t, err, ErrHolidayAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := newTestService(repo, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "2024-12-25", Name: "Christmas"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 2, cache.invalidated)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrHolidayNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_LookupRetriesOnce(t *testing.T) {
	repo := &fakeRepo{failTimes: 1}
	svc := newTestService(repo, &fakeCache{})

	_, err := svc.IsHolidayFresh(context.Background(), date(2024, 12, 25))
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	repo = &fakeRepo{failTimes: 2}
	svc = newTestService(repo, &fakeCache{})
	_, err = svc.IsHolidayFresh(context.Background(), date(2024, 12, 25))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, repo.calls)
}

func TestService_CacheUnavailableFallsBackToDatabase(t *testing.T) {
	repo := &fakeRepo{}
	_, err := repo.Create(context.Background(), &domain.Holiday{Date: date(2024, 12, 25), Name: "Christmas"})
	require.NoError(t, err)

	svc := newTestService(repo, &fakeCache{err: errors.New("redis down")})
	check, err := svc.IsHoliday(context.Background(), date(2024, 12, 25))
	require.NoError(t, err)
	assert.True(t, check.IsHoliday)
}

func TestService_CheckResponse(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeCache{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateHolidayRequest{Date: "2024-12-25", Name: "Christmas"})
	require.NoError(t, err)

	resp, err := svc.Check(ctx, date(2024, 12, 25))
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", resp.Date)
	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.Holiday)
	assert.Equal(t, "Christmas", resp.Holiday.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Holidays, 1)
}
