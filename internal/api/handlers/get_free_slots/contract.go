package get_free_slots

import (
	"context"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	getFreeSlots "github.com/m04kA/SMC-TimberService/internal/usecase/get_free_slots"
)

type GetFreeSlotsUseCase interface {
	Execute(ctx context.Context, req *getFreeSlots.Request) (*domain.DaySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
