package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TimberService/internal/service/schedule/models"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// Service сервис ручных блоков расписания
// Пересечения блоков не проверяются: блоки создаёт персонал
type Service struct {
	blockRepo          BlockRepository
	txManager          TransactionManager
	workingHours       domain.WorkingHours
	minDurationMinutes int
	logger             Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	blockRepo BlockRepository,
	txManager TransactionManager,
	workingHours domain.WorkingHours,
	minDurationMinutes int,
	logger Logger,
) *Service {
	if minDurationMinutes <= 0 {
		minDurationMinutes = domain.DefaultMinDurationMinutes
	}
	if workingHours.Start.IsZero() || workingHours.End.IsZero() {
		workingHours = domain.WorkingHours{Start: domain.DefaultWorkStart, End: domain.DefaultWorkEnd}
	}
	return &Service{
		blockRepo:          blockRepo,
		txManager:          txManager,
		workingHours:       workingHours,
		minDurationMinutes: minDurationMinutes,
		logger:             logger,
	}
}

// ListForDate возвращает все блоки на дату, включая отменённые
func (s *Service) ListForDate(ctx context.Context, date time.Time) (*models.BlockListResponse, error) {
	blocks, err := s.blockRepo.GetByDate(ctx, domain.DateOnly(date))
	if err != nil {
		s.logger.Error("ListForDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// List возвращает блоки за период с фильтром по статусу
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	filter := domain.ScheduleBlockFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if req.Status != nil {
		status, ok := models.ToDomainBlockStatus(*req.Status)
		if !ok {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	blocks, err := s.blockRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// GetByID получает блок по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BlockResponse, error) {
	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainBlock(block), nil
}

// Create создает блок расписания
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block date=%s, start=%s, duration=%d", req.Date, req.StartTime, req.DurationMinutes)

	block, err := s.buildBlock(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// Update применяет частичное обновление к блоку
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Update: updating block id=%d", id)

	var result *domain.ScheduleBlock

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		block, err := s.blockRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		if err := s.applyPatch(block, req); err != nil {
			s.logger.Warn("Update: validation failed for block id=%d: %v", id, err)
			return err
		}

		updated, err := s.blockRepo.Update(txCtx, block)
		if err != nil {
			return s.mapRepoError("Update", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated block id=%d", id)
	return models.FromDomainBlock(result), nil
}

// Delete удаляет блок
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting block id=%d", id)

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", id)
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, scheduleRepo.ErrBlockNotFound) {
		s.logger.Warn("%s: block id=%d not found", op, id)
		return ErrBlockNotFound
	}
	s.logger.Error("%s: repository error for block id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) buildBlock(req *models.CreateBlockRequest) (*domain.ScheduleBlock, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	block := &domain.ScheduleBlock{
		Date:            date,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		Title:           domain.DefaultBlockTitle,
		Status:          domain.BlockStatusBlocked,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ServiceType:     req.ServiceType,
		Notes:           req.Notes,
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		block.Title = strings.TrimSpace(*req.Title)
	}
	if req.Status != nil {
		status, ok := models.ToDomainBlockStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		block.Status = status
	}

	if err := s.validateBlock(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *Service) applyPatch(block *domain.ScheduleBlock, req *models.UpdateBlockRequest) error {
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		block.Date = date
	}
	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
		}
		block.StartTime = start
	}
	if req.DurationMinutes != nil {
		block.DurationMinutes = *req.DurationMinutes
	}
	if req.Title != nil {
		block.Title = strings.TrimSpace(*req.Title)
		if block.Title == "" {
			block.Title = domain.DefaultBlockTitle
		}
	}
	if req.Status != nil {
		status, ok := models.ToDomainBlockStatus(*req.Status)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		block.Status = status
	}
	if req.CustomerName != nil {
		block.CustomerName = req.CustomerName
	}
	if req.CustomerPhone != nil {
		block.CustomerPhone = req.CustomerPhone
	}
	if req.ServiceType != nil {
		block.ServiceType = req.ServiceType
	}
	if req.Notes != nil {
		block.Notes = req.Notes
	}

	return s.validateBlock(block)
}

func (s *Service) validateBlock(block *domain.ScheduleBlock) error {
	if block.DurationMinutes < s.minDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be at least %d", ErrInvalidInput, s.minDurationMinutes)
	}
	window, err := domain.NewTimeWindow(block.Date, block.StartTime, block.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !s.workingHours.Contains(window) {
		return fmt.Errorf("%w: %s-%s is outside working hours %s-%s", ErrOutsideWorkingHours,
			window.Start, window.End(), s.workingHours.Start, s.workingHours.End)
	}
	if len(block.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if block.Notes != nil && len(*block.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
