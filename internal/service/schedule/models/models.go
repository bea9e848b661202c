package models

import (
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на создание блока расписания
type CreateBlockRequest struct {
	Date            string  `json:"date"`      // "2024-07-01"
	StartTime       string  `json:"startTime"` // "14:00"
	DurationMinutes int     `json:"durationMinutes"`
	Title           *string `json:"title,omitempty"`  // по умолчанию "Blocked Time"
	Status          *string `json:"status,omitempty"` // по умолчанию "blocked"
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	ServiceType     *string `json:"serviceType,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateBlockRequest частичное обновление блока. nil означает "не менять"
type UpdateBlockRequest struct {
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Title           *string `json:"title,omitempty"`
	Status          *string `json:"status,omitempty"`
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	ServiceType     *string `json:"serviceType,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ListBlocksRequest фильтр списка блоков
type ListBlocksRequest struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

// Response модели

// BlockResponse ответ с данными блока
type BlockResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	CustomerName    *string   `json:"customerName,omitempty"`
	CustomerPhone   *string   `json:"customerPhone,omitempty"`
	ServiceType     *string   `json:"serviceType,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BlockListResponse ответ со списком блоков
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.ScheduleBlock) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:              b.ID,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime().String(),
		DurationMinutes: b.DurationMinutes,
		Title:           b.Title,
		Status:          string(b.Status),
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		ServiceType:     b.ServiceType,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.ScheduleBlock) *BlockListResponse {
	resp := &BlockListResponse{
		Blocks: make([]BlockResponse, 0, len(blocks)),
	}

	for _, b := range blocks {
		if blockResp := FromDomainBlock(b); blockResp != nil {
			resp.Blocks = append(resp.Blocks, *blockResp)
		}
	}

	return resp
}

// ToDomainBlockStatus конвертирует строку в domain.ScheduleBlockStatus с валидацией
func ToDomainBlockStatus(status string) (domain.ScheduleBlockStatus, bool) {
	s := domain.ScheduleBlockStatus(status)
	return s, s.IsValid()
}
