package check_availability

import (
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// Request окно, которое нужно проверить
type Request struct {
	Date             time.Time        // Дата (без времени)
	StartTime        types.TimeString // Время начала
	DurationMinutes  int              // Длительность в минутах
	ExcludeEnquiryID *int64           // Заявка, которую не считать конфликтом (она сама)
	Fresh            bool             // Проверка перед фиксацией: праздники только из БД
}

// Outcome значения метки метрики проверки
const (
	OutcomeAvailable = "available"
	OutcomeHoliday   = "holiday"
	OutcomeBooked    = "booked"
	OutcomeError     = "error"
)
