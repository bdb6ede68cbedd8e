package reminder

import (
	"testing"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"

	"github.com/stretchr/testify/require"
)

func TestBuildCalendarGridShape(t *testing.T) {
	// March 2024 starts on a Friday, so the grid backs up to Sunday Feb 25.
	monthStart := mustDate(t, "2024-03-01")
	cal := BuildCalendar(monthStart, nil, nil, mustDate(t, "2024-03-10"))

	require.Equal(t, "2024-03", cal.Month)
	require.Len(t, cal.Cells, 42)
	require.Equal(t, "2024-02-25", cal.Cells[0].Date.String())
	require.Equal(t, "2024-04-06", cal.Cells[41].Date.String())

	require.False(t, cal.Cells[0].InMonth)
	require.True(t, cal.Cells[5].InMonth)  // March 1
	require.True(t, cal.Cells[35].InMonth) // March 31
	require.False(t, cal.Cells[36].InMonth)

	inMonth := 0
	today := 0
	for _, cell := range cal.Cells {
		if cell.InMonth {
			inMonth++
		}
		if cell.IsToday {
			today++
			require.Equal(t, "2024-03-10", cell.Date.String())
		}
	}
	require.Equal(t, 31, inMonth)
	require.Equal(t, 1, today)
}

func TestBuildCalendarPlacesPendingRemindersOnly(t *testing.T) {
	pending := reminder.Reminder{
		Identity: "c1_s1_2024-03-06",
		DueDate:  mustDate(t, "2024-03-06"),
		Status:   reminder.StatusPending,
	}
	dismissed := reminder.Reminder{
		Identity: "c2_s2_2024-03-06",
		DueDate:  mustDate(t, "2024-03-06"),
		Status:   reminder.StatusDismissed,
	}

	cal := BuildCalendar(mustDate(t, "2024-03-01"), []reminder.Reminder{pending, dismissed}, nil, mustDate(t, "2024-03-10"))

	// Feb 25 + 10 days = March 6.
	require.Len(t, cal.Cells[10].Reminders, 1)
	require.Equal(t, pending.Identity, cal.Cells[10].Reminders[0].Identity)

	total := 0
	for _, cell := range cal.Cells {
		total += len(cell.Reminders)
	}
	require.Equal(t, 1, total)
}

func TestBuildCalendarPlacesSalesRegardlessOfStatus(t *testing.T) {
	sales := []sale.Sale{
		mkSale("s1", "c1", "2024-03-01", 3),
		mkSale("s2", "c2", "2024-03-01", 1),
		mkSale("s3", "c3", "2024-02-25", 2), // leading cell of the grid
	}

	cal := BuildCalendar(mustDate(t, "2024-03-01"), nil, sales, mustDate(t, "2024-03-10"))

	require.Len(t, cal.Cells[5].Sales, 2)
	require.Len(t, cal.Cells[0].Sales, 1)
}

func TestBuildCalendarNormalizesMonthStart(t *testing.T) {
	mid := BuildCalendar(mustDate(t, "2024-03-17"), nil, nil, mustDate(t, "2024-03-10"))
	first := BuildCalendar(mustDate(t, "2024-03-01"), nil, nil, mustDate(t, "2024-03-10"))

	require.Equal(t, first.Month, mid.Month)
	require.Equal(t, first.Cells[0].Date, mid.Cells[0].Date)
}
