package schedule_blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListForDate(ctx context.Context, date time.Time) (*models.BlockListResponse, error)
	List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.BlockResponse, error)
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateBlockRequest) (*models.BlockResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
