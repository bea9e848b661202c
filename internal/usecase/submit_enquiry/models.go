package submit_enquiry

import "github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"

// Response созданная заявка и результат проверки доступности
type Response struct {
	Enquiry              *models.EnquiryResponse
	AvailabilityDegraded bool
	Warnings             []string
}
