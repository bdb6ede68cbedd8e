// internal/service/reminder/calendar.go
package reminder

import (
	"fmt"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
)

// calendarRows * calendarCols is the fixed month grid: six Sunday-first
// weeks covering the displayed month plus the leading/trailing days of the
// adjacent months.
const (
	calendarRows = 6
	calendarCols = 7
)

// BuildCalendar groups reminders and sales onto the month grid containing
// monthStart. Only pending reminders are calendared; contacted and
// dismissed ones are not actionable and stay off the grid. Sales are placed
// regardless of status as a secondary layer. Pure: no mutation of inputs.
func BuildCalendar(monthStart civil.Date, reminders []reminder.Reminder, sales []sale.Sale, today civil.Date) reminder.Calendar {
	monthStart = monthStart.MonthStart()

	remindersByDate := make(map[string][]reminder.Reminder)
	for _, r := range reminders {
		if r.Status != reminder.StatusPending {
			continue
		}
		key := r.DueDate.String()
		remindersByDate[key] = append(remindersByDate[key], r)
	}

	salesByDate := make(map[string][]sale.Sale)
	for _, s := range sales {
		if s.Date.IsZero() {
			continue
		}
		key := s.Date.String()
		salesByDate[key] = append(salesByDate[key], s)
	}

	// Back up to the Sunday on or before the 1st.
	gridStart := monthStart.AddDays(-int(monthStart.Weekday()))

	cells := make([]reminder.CalendarCell, 0, calendarRows*calendarCols)
	for i := 0; i < calendarRows*calendarCols; i++ {
		date := gridStart.AddDays(i)
		key := date.String()
		cells = append(cells, reminder.CalendarCell{
			Date:      date,
			InMonth:   date.Month() == monthStart.Month() && date.Year() == monthStart.Year(),
			IsToday:   date.Equal(today),
			Reminders: remindersByDate[key],
			Sales:     salesByDate[key],
		})
	}

	return reminder.Calendar{
		Month: fmt.Sprintf("%04d-%02d", monthStart.Year(), int(monthStart.Month())),
		Cells: cells,
	}
}
