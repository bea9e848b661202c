package submit_enquiry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	"github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
)

// UseCase приём заявки клиента
// Запрошенное время проверяется на праздник и занятость до сохранения
type UseCase struct {
	enquiryService  EnquiryService
	availability    AvailabilityChecker
	defaultDuration int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	enquiryService EnquiryService,
	availability AvailabilityChecker,
	defaultDuration int,
	logger Logger,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultEnquiryDurationMinutes
	}
	return &UseCase{
		enquiryService:  enquiryService,
		availability:    availability,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Execute выполняет use case приёма заявки
func (uc *UseCase) Execute(ctx context.Context, req *models.SubmitEnquiryRequest) (*Response, error) {
	uc.logger.Info("SubmitEnquiry: workType=%s, date=%s, time=%s", req.WorkType, req.RequestedDate, req.RequestedTime)

	// 1. Валидация запроса
	draft, err := enquiries.BuildEnquiry(req)
	if err != nil {
		uc.logger.Warn("SubmitEnquiry: validation failed: %v", err)
		return nil, err
	}

	// 2. Запрошенное окно: время клиента + длительность по умолчанию
	window := draft.OccupiedWindow(uc.defaultDuration)
	availability, err := uc.availability.Execute(ctx, &check_availability.Request{
		Date:            window.Date,
		StartTime:       window.Start,
		DurationMinutes: window.DurationMinutes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			uc.logger.Warn("SubmitEnquiry: invalid requested window: %v", err)
			return nil, err
		}
		uc.logger.Error("SubmitEnquiry: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	// 3. Праздник или занятое время
	if !availability.Available {
		err := unavailableError(window, availability)
		uc.logger.Warn("SubmitEnquiry: %v", err)
		return nil, err
	}

	// 4. Сохранение
	created, err := uc.enquiryService.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitEnquiry: enquiry id=%d received, degraded=%t", created.ID, availability.Degraded)
	return &Response{
		Enquiry:              created,
		AvailabilityDegraded: availability.Degraded,
		Warnings:             availability.Warnings,
	}, nil
}

func unavailableError(window domain.TimeWindow, res *domain.AvailabilityResult) error {
	date := window.Date.Format(domain.DateFormat)

	if res.Reason == domain.ReasonHoliday {
		name := ""
		if res.Holiday != nil {
			name = res.Holiday.Name
		}
		return fmt.Errorf("%w: %s is %q, please select another date", ErrRequestedDateIsHoliday, date, name)
	}

	busy := make([]string, 0, len(res.Conflicts))
	for _, c := range res.Conflicts {
		busy = append(busy, fmt.Sprintf("%s-%s", c.Window.Start, c.End()))
	}
	return fmt.Errorf("%w: %s %s-%s overlaps %s, please select another time", ErrRequestedTimeUnavailable,
		date, window.Start, window.End(), strings.Join(busy, ", "))
}
