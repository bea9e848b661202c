package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/service/holidays/models"
)

type HolidayService interface {
	List(ctx context.Context) (*models.HolidayListResponse, error)
	Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	Check(ctx context.Context, date time.Time) (*models.HolidayCheckResponse, error)
	GetByID(ctx context.Context, id int64) (*models.HolidayResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
