package schedule_blocks

import (
	"net/http"

	"github.com/m04kA/SMC-TimberService/internal/api/handlers"
	"github.com/m04kA/SMC-TimberService/internal/service/schedule/models"
)

// ToListRequest собирает фильтр из query параметров (startDate, endDate, status)
func ToListRequest(r *http.Request) (*models.ListBlocksRequest, error) {
	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}

	return &models.ListBlocksRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Status:    handlers.QueryString(r, "status"),
	}, nil
}
