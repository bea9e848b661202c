package submit_enquiry

import (
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	submitEnquiry "github.com/m04kA/SMC-TimberService/internal/usecase/submit_enquiry"
)

// SubmitEnquiryResponse HTTP response model
type SubmitEnquiryResponse struct {
	Enquiry              *models.EnquiryResponse `json:"enquiry"`
	AvailabilityDegraded bool                    `json:"availabilityDegraded"`
	Warnings             []string                `json:"warnings,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitEnquiry.Response) *SubmitEnquiryResponse {
	return &SubmitEnquiryResponse{
		Enquiry:              resp.Enquiry,
		AvailabilityDegraded: resp.AvailabilityDegraded,
		Warnings:             resp.Warnings,
	}
}
