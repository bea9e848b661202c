package check_availability

import (
	"context"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*domain.AvailabilityResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
