package submit_enquiry

import (
	"context"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	"github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
)

// EnquiryService сохранение новой заявки
type EnquiryService interface {
	Submit(ctx context.Context, req *models.SubmitEnquiryRequest) (*models.EnquiryResponse, error)
}

// AvailabilityChecker проверка доступности окна
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*domain.AvailabilityResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
