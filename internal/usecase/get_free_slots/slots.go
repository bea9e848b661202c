package get_free_slots

import (
	"sort"

	"github.com/m04kA/SMC-TimberService/internal/domain"
	"github.com/m04kA/SMC-TimberService/pkg/types"
)

// sortBooked сортирует занятые окна по времени начала, затем по концу
func sortBooked(booked []domain.Conflict) {
	sort.SliceStable(booked, func(i, j int) bool {
		a, b := booked[i].Window, booked[j].Window
		if !a.Start.Equal(b.Start) {
			return a.Start.IsBefore(b.Start)
		}
		return a.End().IsBefore(b.End())
	})
}

// freeGaps возвращает промежутки рабочего дня между занятыми окнами,
// в которые помещается работа длительностью duration
// booked должен быть отсортирован по началу
//
// Примеры (рабочий день 09:00-17:00):
// - занято 14:00-16:00 → свободно 09:00-14:00, 16:00-17:00
// - занято 09:00-10:00 и 09:30-11:00 → свободно 11:00-17:00 (окна сливаются)
// - занято 08:00-10:00 → свободно 10:00-17:00 (окно обрезается по рабочим часам)
func freeGaps(hours domain.WorkingHours, booked []domain.Conflict, duration int) []domain.FreeSlot {
	gaps := make([]domain.FreeSlot, 0)
	cursor := hours.Start

	addGap := func(start, end types.TimeString) {
		if !start.IsBefore(end) {
			return
		}
		gap := domain.FreeSlot{Start: start, End: end, DurationMinutes: start.MinutesUntil(end)}
		if gap.Fits(duration) {
			gaps = append(gaps, gap)
		}
	}

	for _, b := range booked {
		start, end := b.Window.Start, b.Window.End()
		if end.IsZero() || !end.IsAfter(cursor) {
			continue
		}
		if !start.IsBefore(hours.End) {
			break
		}

		addGap(cursor, start)
		cursor = end
	}

	if cursor.IsBefore(hours.End) {
		addGap(cursor, hours.End)
	}

	return gaps
}
