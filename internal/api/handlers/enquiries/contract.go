package enquiries

import (
	"context"

	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
)

type EnquiryService interface {
	List(ctx context.Context, req *models.ListEnquiriesRequest) (*models.EnquiryListResponse, error)
	Get(ctx context.Context, id int64) (*models.EnquiryResponse, error)
	Patch(ctx context.Context, id int64, req *models.PatchEnquiryRequest) (*models.EnquiryResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
