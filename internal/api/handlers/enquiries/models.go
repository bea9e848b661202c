package enquiries

import (
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
)

// ToListRequest собирает фильтр списка из query параметров
func ToListRequest(r *http.Request) (*models.ListEnquiriesRequest, error) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}

	return &models.ListEnquiriesRequest{
		Status:    handlers.QueryString(r, "status"),
		WorkType:  handlers.QueryString(r, "workType"),
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
