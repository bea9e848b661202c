package enquiry_lifecycle

import (
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// Settings рабочие часы и длительности
type Settings struct {
	WorkingHours           domain.WorkingHours
	MinDurationMinutes     int
	DefaultDurationMinutes int
}

// AcceptRequest принятие запрошенного клиентом времени
type AcceptRequest struct {
	DurationMinutes int     // 0 = длительность по умолчанию
	AdminNotes      *string // опционально
}

// ProposeRequest предложение альтернативного времени
type ProposeRequest struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	AdminNotes      *string
}

// OfflinePaymentRequest отметка об оплате вне системы
type OfflinePaymentRequest struct {
	Note *string
}

// Response результат перехода
type Response struct {
	Enquiry              *domain.Enquiry
	Noop                 bool     // заявка уже была в целевом состоянии
	AvailabilityDegraded bool     // проверка доступности выполнена не полностью
	Warnings             []string // что именно не удалось проверить
}

// Метки результата для метрик
const (
	resultOK       = "ok"
	resultNoop     = "noop"
	resultConflict = "conflict"
	resultInvalid  = "invalid"
	resultError    = "error"
)
