package domain

import "math"

// Default configuration values
const (
	DefaultEnquiryDurationMinutes = 120 // окно заявки без явного конца
	DefaultWorkStart              = "09:00"
	DefaultWorkEnd                = "17:00"
	DefaultMinDurationMinutes     = 15
)

// Business validation constants
const (
	MinCubicFeet      = 0.1
	MaxNotesLength    = 1000
	MaxTitleLength    = 200
	DefaultBlockTitle = "Blocked Time"
	RatePerHour       = 1200.0 // стоимость часа обработки
	CubicFeetPerHour  = 10.0   // объём, обрабатываемый за час
	RatePerCubicFoot  = RatePerHour / CubicFeetPerHour
	lastMinuteOfDay   = 24*60 - 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы заявок, занимающих время в календаре
var BlockingStatuses = []EnquiryStatus{
	StatusScheduled,
	StatusTimeAccepted,
	StatusInProgress,
}

// ActiveBlockStatuses статусы блоков, участвующих в проверке пересечений
var ActiveBlockStatuses = []ScheduleBlockStatus{
	BlockStatusBlocked,
	BlockStatusBooked,
}

// ProcessingHours время обработки: каждые 10 куб. футов = 1 час, с округлением вверх
func ProcessingHours(cubicFeet float64) int {
	if cubicFeet <= 0 {
		return 0
	}
	return int(math.Ceil(cubicFeet / CubicFeetPerHour))
}

// EstimateCost стоимость пропорциональна объёму
func EstimateCost(cubicFeet float64) float64 {
	return math.Round(cubicFeet*RatePerCubicFoot*100) / 100
}
