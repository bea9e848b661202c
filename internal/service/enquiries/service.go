package enquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	enquiryRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/enquiry"
	"github.com/m04kA/SMC-TimberService/internal/service/enquiries/models"
	"github.com/m04kA/SMC-TimberService/pkg/ptr"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// Service сервис хранения заявок
// Переходы жизненного цикла здесь не проверяются, этим занимается usecase enquiry_lifecycle
type Service struct {
	enquiryRepo  EnquiryRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	enquiryRepo EnquiryRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		enquiryRepo:  enquiryRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List возвращает заявки с фильтрацией, новые первыми
func (s *Service) List(ctx context.Context, req *models.ListEnquiriesRequest) (*models.EnquiryListResponse, error) {
	filter := domain.EnquiryFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if req.Status != nil {
		status := domain.EnquiryStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}
	if req.WorkType != nil {
		workType := domain.WorkType(*req.WorkType)
		if !workType.IsValid() {
			s.logger.Warn("List: invalid workType=%s", *req.WorkType)
			return nil, fmt.Errorf("%w: %q", ErrInvalidWorkType, *req.WorkType)
		}
		filter.WorkType = &workType
	}

	enquiries, err := s.enquiryRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEnquiryList(enquiries), nil
}

// Get получает заявку по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.EnquiryResponse, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Get", id, err)
	}

	return models.FromDomainEnquiry(enquiry), nil
}

// Submit сохраняет новую заявку в статусе ENQUIRY_RECEIVED
// Объём, время обработки и стоимость считаются по позициям
func (s *Service) Submit(ctx context.Context, req *models.SubmitEnquiryRequest) (*models.EnquiryResponse, error) {
	s.logger.Info("Submit: new enquiry workType=%s, date=%s, time=%s", req.WorkType, req.RequestedDate, req.RequestedTime)

	enquiry, err := BuildEnquiry(req)
	if err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	created, err := s.enquiryRepo.Create(ctx, enquiry)
	if err != nil {
		s.logger.Error("Submit: repository error: %v", err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: successfully created enquiry id=%d", created.ID)
	return models.FromDomainEnquiry(created), nil
}

// Patch обновляет поля заявки без проверки переходов статуса
// При переводе в COMPLETED проставляется completedAt
func (s *Service) Patch(ctx context.Context, id int64, req *models.PatchEnquiryRequest) (*models.EnquiryResponse, error) {
	s.logger.Info("Patch: updating enquiry id=%d", id)

	var result *domain.Enquiry

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		enquiry, err := s.enquiryRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Patch", id, err)
		}

		if err := s.applyPatch(enquiry, req); err != nil {
			s.logger.Warn("Patch: validation failed for enquiry id=%d: %v", id, err)
			return err
		}

		updated, err := s.enquiryRepo.Update(txCtx, enquiry)
		if err != nil {
			return s.mapRepoError("Patch", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Patch: successfully updated enquiry id=%d, status=%s", id, result.Status)
	return models.FromDomainEnquiry(result), nil
}

// Delete удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting enquiry id=%d", id)

	if err := s.enquiryRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted enquiry id=%d", id)
	return nil
}

// Stats возвращает сводку по статусам и типам работ
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	rows, err := s.enquiryRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(aggregateStats(rows)), nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
		s.logger.Warn("%s: enquiry id=%d not found", op, id)
		return ErrEnquiryNotFound
	}
	s.logger.Error("%s: repository error for enquiry id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) applyPatch(e *domain.Enquiry, req *models.PatchEnquiryRequest) error {
	if req.Status != nil {
		status := domain.EnquiryStatus(*req.Status)
		if !status.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		e.Status = status
		if status == domain.StatusCompleted && e.CompletedAt == nil {
			e.CompletedAt = ptr.Ptr(s.timeProvider.Now())
		}
	}

	if req.AdminNotes != nil {
		if len(*req.AdminNotes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		e.AdminNotes = req.AdminNotes
	}

	if req.ScheduledDate != nil {
		if *req.ScheduledDate == "" {
			e.ScheduledDate = nil
		} else {
			date, err := domain.ParseDate(*req.ScheduledDate)
			if err != nil {
				return fmt.Errorf("%w: scheduledDate: %v", ErrInvalidInput, err)
			}
			e.ScheduledDate = &date
		}
	}

	if req.ScheduledTime != nil {
		if *req.ScheduledTime == "" {
			e.ScheduledTime = nil
		} else {
			t, err := types.NewTimeStringFromString(*req.ScheduledTime)
			if err != nil {
				return fmt.Errorf("%w: scheduledTime must be HH:MM", ErrInvalidInput)
			}
			e.ScheduledTime = &t
		}
	}

	if req.EstimatedCost != nil {
		if *req.EstimatedCost < 0 {
			return fmt.Errorf("%w: estimatedCost must not be negative", ErrInvalidInput)
		}
		e.EstimatedCost = req.EstimatedCost
	}

	if req.ActualCost != nil {
		if *req.ActualCost < 0 {
			return fmt.Errorf("%w: actualCost must not be negative", ErrInvalidInput)
		}
		e.ActualCost = req.ActualCost
	}

	return nil
}

// BuildEnquiry валидирует запрос и строит новую заявку с производными полями
func BuildEnquiry(req *models.SubmitEnquiryRequest) (*domain.Enquiry, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	workType := domain.WorkType(req.WorkType)
	if !workType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWorkType, req.WorkType)
	}

	requestedDate, err := domain.ParseDate(req.RequestedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: requestedDate: %v", ErrInvalidInput, err)
	}
	requestedTime, err := types.NewTimeStringFromString(req.RequestedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: requestedTime must be HH:MM", ErrInvalidInput)
	}

	if len(req.LogItems) == 0 {
		return nil, fmt.Errorf("%w: at least one log entry is required", ErrInvalidInput)
	}

	var totalCubicFeet float64
	var totalLogs int
	for i, item := range req.LogItems {
		if strings.TrimSpace(item.WoodType) == "" {
			return nil, fmt.Errorf("%w: log entry %d: woodType is required", ErrInvalidInput, i+1)
		}
		if item.NumberOfLogs < 1 {
			return nil, fmt.Errorf("%w: log entry %d: numberOfLogs must be at least 1", ErrInvalidInput, i+1)
		}
		if item.CubicFeet < domain.MinCubicFeet {
			return nil, fmt.Errorf("%w: log entry %d: cubicFeet must be at least %.1f", ErrInvalidInput, i+1, domain.MinCubicFeet)
		}
		totalCubicFeet += item.CubicFeet
		totalLogs += item.NumberOfLogs
	}

	cubicFeet := totalCubicFeet
	if req.CubicFeet != nil {
		cubicFeet = *req.CubicFeet
	}
	if cubicFeet < domain.MinCubicFeet {
		return nil, fmt.Errorf("%w: total cubicFeet must be at least %.1f", ErrInvalidInput, domain.MinCubicFeet)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &domain.Enquiry{
		CustomerName:    name,
		CustomerEmail:   req.CustomerEmail,
		Phone:           req.Phone,
		WorkType:        workType,
		LogItems:        models.ToDomainLogItems(req.LogItems),
		CubicFeet:       cubicFeet,
		NumberOfLogs:    ptr.Ptr(totalLogs),
		ProcessingHours: domain.ProcessingHours(cubicFeet),
		RatePerHour:     domain.RatePerHour,
		RequestedDate:   requestedDate,
		RequestedTime:   requestedTime,
		Notes:           req.Notes,
		Status:          domain.StatusEnquiryReceived,
		EstimatedCost:   ptr.Ptr(domain.EstimateCost(cubicFeet)),
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   domain.PaymentMethodNone,
	}, nil
}

func aggregateStats(rows []enquiryRepo.StatsRow) *domain.EnquiryStats {
	stats := &domain.EnquiryStats{
		ByStatus:            make(map[domain.EnquiryStatus]int),
		ByWorkType:          make(map[domain.WorkType]int),
		CubicFeetByWorkType: make(map[domain.WorkType]float64),
	}

	for _, row := range rows {
		stats.Total += row.Count
		stats.PendingPayment += row.PendingPayment
		stats.ByStatus[row.Status] += row.Count
		stats.ByWorkType[row.WorkType] += row.Count
		stats.CubicFeetByWorkType[row.WorkType] += row.CubicFeet
	}

	return stats
}
