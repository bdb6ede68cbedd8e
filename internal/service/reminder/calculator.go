// internal/service/reminder/calculator.go
package reminder

import (
	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
)

// Priority thresholds in days overdue.
const (
	highPriorityAfter   = 7
	mediumPriorityAfter = 3
)

// Calculate derives a reminder from a customer's most recent sale. The
// business rule: the number of days to wait before re-contacting equals the
// number of units bought, a proxy for how long the batch lasts.
//
// Returns ok == false when the sale cannot produce a reminder: missing
// date, no items, or nothing with a positive quantity.
func Calculate(s sale.Sale, today civil.Date) (reminder.Reminder, bool) {
	if s.Date.IsZero() || len(s.Items) == 0 {
		return reminder.Reminder{}, false
	}

	units := s.TotalUnits()
	if units == 0 {
		return reminder.Reminder{}, false
	}

	waitDays := units
	dueDate := s.Date.AddDays(waitDays)
	isDue := !dueDate.After(today)

	r := reminder.Reminder{
		Identity:       reminder.Identity(s.CustomerID, s.ID, dueDate),
		CustomerID:     s.CustomerID,
		SourceSaleID:   s.ID,
		SourceSaleDate: s.Date,
		TotalUnits:     units,
		WaitDays:       waitDays,
		DueDate:        dueDate,
		IsDue:          isDue,
		Status:         reminder.StatusPending,
	}

	if isDue {
		r.OverdueDays = today.DaysBetween(dueDate)
	} else {
		r.RemainingDays = dueDate.DaysBetween(today)
	}

	return r, true
}

// Classify maps a reminder's due-state to a three-level urgency. Only
// IsDue and OverdueDays participate; an upcoming reminder is always low no
// matter how distant.
func Classify(r reminder.Reminder) reminder.Priority {
	if !r.IsDue {
		return reminder.PriorityLow
	}

	switch {
	case r.OverdueDays >= highPriorityAfter:
		return reminder.PriorityHigh
	case r.OverdueDays >= mediumPriorityAfter:
		return reminder.PriorityMedium
	default:
		return reminder.PriorityLow
	}
}

// ComputeStats reduces a merged reminder list to badge counts. Pending,
// contacted and dismissed partition the total; overdue and upcoming
// partition pending.
func ComputeStats(reminders []reminder.Reminder) reminder.Stats {
	stats := reminder.Stats{Total: len(reminders)}

	for _, r := range reminders {
		switch r.Status {
		case reminder.StatusPending:
			stats.Pending++
			if r.IsDue {
				stats.Overdue++
			} else {
				stats.Upcoming++
			}
		case reminder.StatusContacted:
			stats.Contacted++
		case reminder.StatusDismissed:
			stats.Dismissed++
		}
	}

	return stats
}
