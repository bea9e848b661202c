package submit_enquiry

import (
	"context"

	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	submitEnquiry "github.com/m04kA/SMC-TimberService/internal/usecase/submit_enquiry"
)

type SubmitEnquiryUseCase interface {
	Execute(ctx context.Context, req *models.SubmitEnquiryRequest) (*submitEnquiry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
