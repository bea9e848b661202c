package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-TimberService/internal/service/holidays/models"
)

// lookupTries первая попытка и один повтор
const lookupTries = 2

// Service сервис праздничного календаря
type Service struct {
	holidayRepo HolidayRepository
	cache       HolidayCache
	retryDelay  time.Duration
	logger      Logger
}

// NewService создает новый экземпляр сервиса праздников
func NewService(
	holidayRepo HolidayRepository,
	cache HolidayCache,
	retryDelay time.Duration,
	logger Logger,
) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		cache:       cache,
		retryDelay:  retryDelay,
		logger:      logger,
	}
}

// IsHoliday проверяет дату по кэшу, при промахе или недоступности кэша идёт в БД
func (s *Service) IsHoliday(ctx context.Context, date time.Time) (*domain.HolidayCheck, error) {
	cached, found, err := s.cache.GetAll(ctx)
	if err != nil {
		s.logger.Warn("IsHoliday: cache unavailable, falling back to database: %v", err)
	}
	if err == nil && found {
		check := domain.CheckHoliday(cached, date)
		return &check, nil
	}

	holidays, err := withRetry(ctx, s.retryDelay, func() ([]domain.Holiday, error) {
		return s.holidayRepo.List(ctx)
	})
	if err != nil {
		s.logger.Error("IsHoliday: failed to list holidays: %v", err)
		return nil, fmt.Errorf("%w: IsHoliday - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.SetAll(ctx, holidays); err != nil {
		s.logger.Warn("IsHoliday: failed to fill cache: %v", err)
	}

	check := domain.CheckHoliday(holidays, date)
	return &check, nil
}

// IsHolidayFresh проверяет дату напрямую по БД, минуя кэш
func (s *Service) IsHolidayFresh(ctx context.Context, date time.Time) (*domain.HolidayCheck, error) {
	matching, err := withRetry(ctx, s.retryDelay, func() ([]domain.Holiday, error) {
		return s.holidayRepo.GetMatching(ctx, date)
	})
	if err != nil {
		s.logger.Error("IsHolidayFresh: failed to get holidays for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: IsHolidayFresh - repository error: %v", ErrInternal, err)
	}

	check := domain.CheckHoliday(matching, date)
	return &check, nil
}

// Check проверка даты для HTTP ответа
func (s *Service) Check(ctx context.Context, date time.Time) (*models.HolidayCheckResponse, error) {
	check, err := s.IsHoliday(ctx, date)
	if err != nil {
		return nil, err
	}
	return models.FromDomainHolidayCheck(date, check), nil
}

// List возвращает все праздники по дате
func (s *Service) List(ctx context.Context) (*models.HolidayListResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// GetByID получает праздник по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.HolidayResponse, error) {
	holiday, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("GetByID: holiday id=%d not found", id)
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("GetByID: repository error for holiday id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHoliday(holiday), nil
}

// Create создает праздник. На одну дату допускается только один праздник
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: creating holiday date=%s, recurring=%t", req.Date, req.IsRecurring)

	holiday, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.holidayRepo.Create(ctx, holiday)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayAlreadyExists) {
			s.logger.Warn("Create: holiday for date=%s already exists", req.Date)
			return nil, ErrHolidayAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create")

	s.logger.Info("Create: successfully created holiday id=%d", created.ID)
	return models.FromDomainHoliday(created), nil
}

// Delete удаляет праздник
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting holiday id=%d", id)

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete")

	s.logger.Info("Delete: successfully deleted holiday id=%d", id)
	return nil
}

// invalidate сбрасывает кэш. Ошибка не фатальна: запись истечёт по TTL
func (s *Service) invalidate(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate holiday cache: %v", op, err)
	}
}

func validateCreate(req *models.CreateHolidayRequest) (*domain.Holiday, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if req.Description != nil && len(*req.Description) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &domain.Holiday{
		Date:        date,
		Name:        name,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	}, nil
}

// withRetry выполняет чтение с одним повтором через retryDelay
func withRetry[T any](ctx context.Context, retryDelay time.Duration, op func() (T, error)) (T, error) {
	return backoff.Retry[T](ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(retryDelay)),
		backoff.WithMaxTries(lookupTries),
	)
}
