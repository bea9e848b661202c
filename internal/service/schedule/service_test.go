package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TimberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-TimberService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct{ calls int }

func (t *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeRepo struct {
	blocks map[int64]domain.ScheduleBlock
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{blocks: map[int64]domain.ScheduleBlock{}}
}

func (r *fakeRepo) Create(_ context.Context, b *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	r.nextID++
	created := *b
	created.ID = r.nextID
	r.blocks[created.ID] = created
	return &created, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleBlock, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, scheduleRepo.ErrBlockNotFound
	}
	return &b, nil
}

func (r *fakeRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.ScheduleBlock, error) {
	var out []*domain.ScheduleBlock
	for _, b := range r.blocks {
		if domain.SameDate(b.Date, date) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.ScheduleBlockFilter) ([]*domain.ScheduleBlock, error) {
	var out []*domain.ScheduleBlock
	for _, b := range r.blocks {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, b *domain.ScheduleBlock) (*domain.ScheduleBlock, error) {
	if _, ok := r.blocks[b.ID]; !ok {
		return nil, scheduleRepo.ErrBlockNotFound
	}
	r.blocks[b.ID] = *b
	return b, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.blocks[id]; !ok {
		return scheduleRepo.ErrBlockNotFound
	}
	delete(r.blocks, id)
	return nil
}

func workDay() domain.WorkingHours {
	return domain.WorkingHours{Start: "09:00", End: "17:00"}
}

func TestService_CreateDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), &inlineTx{}, workDay(), 15, nopLogger{})

	block, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date:            "2024-07-01",
		StartTime:       "14:00",
		DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBlockTitle, block.Title)
	assert.Equal(t, string(domain.BlockStatusBlocked), block.Status)
	assert.Equal(t, "16:00", block.EndTime)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &inlineTx{}, workDay(), 15, nopLogger{})

	tests := []struct {
		name    string
		req     models.CreateBlockRequest
		wantErr error
	}{
		{
			name:    "missing date",
			req:     models.CreateBlockRequest{StartTime: "10:00", DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad start time",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "9:00", DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero duration",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "10:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "below minimum duration",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "10:00", DurationMinutes: 10},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "crosses midnight",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "23:30", DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "after working hours",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "20:00", DurationMinutes: 120},
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "ends after working hours",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "16:30", DurationMinutes: 60},
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name:    "starts before working hours",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "08:00", DurationMinutes: 60},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown status",
			req:     models.CreateBlockRequest{Date: "2024-07-01", StartTime: "10:00", DurationMinutes: 60, Status: ptr.Ptr("paused")},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestService_BlockFillingWorkingDay(t *testing.T) {
	svc := NewService(newFakeRepo(), &inlineTx{}, workDay(), 15, nopLogger{})

	block, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date:            "2024-07-01",
		StartTime:       "09:00",
		DurationMinutes: 480,
	})
	require.NoError(t, err)
	assert.Equal(t, "17:00", block.EndTime)
}

func TestService_OverlappingBlocksAreAllowed(t *testing.T) {
	svc := NewService(newFakeRepo(), &inlineTx{}, workDay(), 15, nopLogger{})
	ctx := context.Background()

	req := &models.CreateBlockRequest{Date: "2024-07-01", StartTime: "14:00", DurationMinutes: 120}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, req)
	require.NoError(t, err)

	list, err := svc.ListForDate(ctx, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, list.Blocks, 2)
}

func TestService_UpdatePatch(t *testing.T) {
	repo := newFakeRepo()
	tx := &inlineTx{}
	svc := NewService(repo, tx, workDay(), 15, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateBlockRequest{
		Date:            "2024-07-01",
		StartTime:       "14:00",
		DurationMinutes: 120,
		Notes:           ptr.Ptr("saw maintenance"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateBlockRequest{
		Status:          ptr.Ptr("cancelled"),
		DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "cancelled", updated.Status)
	assert.Equal(t, "15:00", updated.EndTime)
	assert.Equal(t, "saw maintenance", *updated.Notes, "fields not in the patch are kept")

	_, err = svc.Update(ctx, created.ID, &models.UpdateBlockRequest{StartTime: ptr.Ptr("23:30")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "14:00", repo.blocks[created.ID].StartTime.String(), "invalid patch is not stored")

	_, err = svc.Update(ctx, created.ID, &models.UpdateBlockRequest{StartTime: ptr.Ptr("16:30")})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.Equal(t, "14:00", repo.blocks[created.ID].StartTime.String())

	_, err = svc.Update(ctx, 999, &models.UpdateBlockRequest{})
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListAndDelete(t *testing.T) {
	svc := NewService(newFakeRepo(), &inlineTx{}, workDay(), 15, nopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CreateBlockRequest{Date: "2024-07-01", StartTime: "09:00", DurationMinutes: 30})
	require.NoError(t, err)

	list, err := svc.List(ctx, &models.ListBlocksRequest{Status: ptr.Ptr("blocked")})
	require.NoError(t, err)
	assert.Len(t, list.Blocks, 1)

	_, err = svc.List(ctx, &models.ListBlocksRequest{Status: ptr.Ptr("nope")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	start := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(ctx, &models.ListBlocksRequest{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrBlockNotFound)
}
