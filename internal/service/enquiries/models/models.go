package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// Request модели

// LogItemRequest партия брёвен одной породы
type LogItemRequest struct {
	WoodType     string  `json:"woodType"`
	NumberOfLogs int     `json:"numberOfLogs"`
	Thickness    float64 `json:"thickness"`
	Width        float64 `json:"width"`
	Length       float64 `json:"length"`
	CubicFeet    float64 `json:"cubicFeet"`
}

// SubmitEnquiryRequest запрос на создание заявки
type SubmitEnquiryRequest struct {
	CustomerName  string           `json:"customerName"`
	CustomerEmail *string          `json:"customerEmail,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	WorkType      string           `json:"workType"`
	LogItems      []LogItemRequest `json:"logItems"`
	CubicFeet     *float64         `json:"cubicFeet,omitempty"` // если не указан, сумма по позициям
	RequestedDate string           `json:"requestedDate"`       // "2024-06-10"
	RequestedTime string           `json:"requestedTime"`       // "09:00"
	Notes         *string          `json:"notes,omitempty"`
}

// PatchEnquiryRequest произвольное обновление полей заявки без проверки переходов
// Пустая строка в scheduledDate/scheduledTime очищает поле
type PatchEnquiryRequest struct {
	Status        *string  `json:"status,omitempty"`
	AdminNotes    *string  `json:"adminNotes,omitempty"`
	ScheduledDate *string  `json:"scheduledDate,omitempty"`
	ScheduledTime *string  `json:"scheduledTime,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	ActualCost    *float64 `json:"actualCost,omitempty"`
}

// ListEnquiriesRequest фильтр списка заявок
type ListEnquiriesRequest struct {
	Status    *string
	WorkType  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Response модели

// EnquiryResponse ответ с данными заявки
type EnquiryResponse struct {
	ID              int64            `json:"id"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   *string          `json:"customerEmail,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	WorkType        string           `json:"workType"`
	LogItems        []LogItemRequest `json:"logItems"`
	CubicFeet       float64          `json:"cubicFeet"`
	NumberOfLogs    *int             `json:"numberOfLogs,omitempty"`
	ProcessingHours int              `json:"processingHours"`
	RatePerHour     float64          `json:"ratePerHour"`
	RequestedDate   string           `json:"requestedDate"`
	RequestedTime   string           `json:"requestedTime"`
	Notes           *string          `json:"notes,omitempty"`
	Status          string           `json:"status"`
	AdminNotes      *string          `json:"adminNotes,omitempty"`

	AcceptedDate      *string `json:"acceptedDate,omitempty"`
	AcceptedStartTime *string `json:"acceptedStartTime,omitempty"`
	AcceptedEndTime   *string `json:"acceptedEndTime,omitempty"`
	ProposedDate      *string `json:"proposedDate,omitempty"`
	ProposedStartTime *string `json:"proposedStartTime,omitempty"`
	ProposedEndTime   *string `json:"proposedEndTime,omitempty"`
	ScheduledDate     *string `json:"scheduledDate,omitempty"`
	ScheduledTime     *string `json:"scheduledTime,omitempty"`

	EstimatedCost      *float64   `json:"estimatedCost,omitempty"`
	ActualCost         *float64   `json:"actualCost,omitempty"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaymentMethod      string     `json:"paymentMethod"`
	PaymentReference   *string    `json:"paymentReference,omitempty"`
	OfflinePaymentNote *string    `json:"offlinePaymentNote,omitempty"`
	PaymentDate        *time.Time `json:"paymentDate,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EnquiryListResponse ответ со списком заявок
type EnquiryListResponse struct {
	Count     int               `json:"count"`
	Enquiries []EnquiryResponse `json:"enquiries"`
}

// StatusStat количество заявок в статусе
type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// WorkTypeStat агрегат по типу работ
type WorkTypeStat struct {
	WorkType       string  `json:"workType"`
	Count          int     `json:"count"`
	TotalCubicFeet float64 `json:"totalCubicFeet"`
}

// StatsResponse сводка по заявкам
type StatsResponse struct {
	Total          int            `json:"total"`
	PendingPayment int            `json:"pendingPayment"`
	StatusStats    []StatusStat   `json:"statusStats"`
	WorkTypeStats  []WorkTypeStat `json:"workTypeStats"`
}

// Методы конвертации

// FromDomainEnquiry конвертирует domain модель в DTO
func FromDomainEnquiry(e *domain.Enquiry) *EnquiryResponse {
	if e == nil {
		return nil
	}

	items := make([]LogItemRequest, 0, len(e.LogItems))
	for _, item := range e.LogItems {
		items = append(items, LogItemRequest(item))
	}

	return &EnquiryResponse{
		ID:                 e.ID,
		CustomerName:       e.CustomerName,
		CustomerEmail:      e.CustomerEmail,
		Phone:              e.Phone,
		WorkType:           string(e.WorkType),
		LogItems:           items,
		CubicFeet:          e.CubicFeet,
		NumberOfLogs:       e.NumberOfLogs,
		ProcessingHours:    e.ProcessingHours,
		RatePerHour:        e.RatePerHour,
		RequestedDate:      e.RequestedDate.Format(domain.DateFormat),
		RequestedTime:      e.RequestedTime.String(),
		Notes:              e.Notes,
		Status:             string(e.Status),
		AdminNotes:         e.AdminNotes,
		AcceptedDate:       formatDate(e.AcceptedDate),
		AcceptedStartTime:  formatTime(e.AcceptedStart),
		AcceptedEndTime:    formatTime(e.AcceptedEnd),
		ProposedDate:       formatDate(e.ProposedDate),
		ProposedStartTime:  formatTime(e.ProposedStart),
		ProposedEndTime:    formatTime(e.ProposedEnd),
		ScheduledDate:      formatDate(e.ScheduledDate),
		ScheduledTime:      formatTime(e.ScheduledTime),
		EstimatedCost:      e.EstimatedCost,
		ActualCost:         e.ActualCost,
		PaymentStatus:      string(e.PaymentStatus),
		PaymentMethod:      string(e.PaymentMethod),
		PaymentReference:   e.PaymentReference,
		OfflinePaymentNote: e.OfflinePaymentNote,
		PaymentDate:        e.PaymentDate,
		CompletedAt:        e.CompletedAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

// FromDomainEnquiryList конвертирует список domain моделей в DTO
func FromDomainEnquiryList(enquiries []*domain.Enquiry) *EnquiryListResponse {
	resp := &EnquiryListResponse{
		Enquiries: make([]EnquiryResponse, 0, len(enquiries)),
	}

	for _, e := range enquiries {
		if enquiryResp := FromDomainEnquiry(e); enquiryResp != nil {
			resp.Enquiries = append(resp.Enquiries, *enquiryResp)
		}
	}
	resp.Count = len(resp.Enquiries)

	return resp
}

// FromDomainStats конвертирует сводку, сортируя группы по имени
func FromDomainStats(stats *domain.EnquiryStats) *StatsResponse {
	resp := &StatsResponse{
		Total:          stats.Total,
		PendingPayment: stats.PendingPayment,
		StatusStats:    make([]StatusStat, 0, len(stats.ByStatus)),
		WorkTypeStats:  make([]WorkTypeStat, 0, len(stats.ByWorkType)),
	}

	for status, count := range stats.ByStatus {
		resp.StatusStats = append(resp.StatusStats, StatusStat{Status: string(status), Count: count})
	}
	sort.Slice(resp.StatusStats, func(i, j int) bool {
		return resp.StatusStats[i].Status < resp.StatusStats[j].Status
	})

	for workType, count := range stats.ByWorkType {
		resp.WorkTypeStats = append(resp.WorkTypeStats, WorkTypeStat{
			WorkType:       string(workType),
			Count:          count,
			TotalCubicFeet: stats.CubicFeetByWorkType[workType],
		})
	}
	sort.Slice(resp.WorkTypeStats, func(i, j int) bool {
		return resp.WorkTypeStats[i].WorkType < resp.WorkTypeStats[j].WorkType
	})

	return resp
}

// ToDomainLogItems конвертирует позиции запроса
func ToDomainLogItems(items []LogItemRequest) []domain.LogItem {
	out := make([]domain.LogItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.LogItem(item))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}

func formatTime(t *types.TimeString) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.String()
	return &s
}
