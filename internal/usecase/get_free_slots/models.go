package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-TimberService/internal/domain"
)

// Request модель запроса свободных окон
type Request struct {
	Date            time.Time // дата без времени
	DurationMinutes int       // требуемая длительность работы
}

// Settings рабочие часы и длительность окна заявки без конца
type Settings struct {
	WorkingHours           domain.WorkingHours
	DefaultDurationMinutes int
}

const (
	warnScheduleUnavailable = "schedule blocks could not be checked"
	warnHolidayUnavailable  = "holiday calendar could not be checked"
)
