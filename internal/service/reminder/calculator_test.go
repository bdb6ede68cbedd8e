package reminder

import (
	"testing"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"

	"github.com/stretchr/testify/require"
)

func mkSale(id, customerID, date string, quantities ...int) sale.Sale {
	d, err := civil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	items := make([]sale.Item, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, sale.Item{ProductID: "p", Quantity: q, UnitPriceCents: 4500})
	}
	return sale.Sale{
		ID:         id,
		CustomerID: customerID,
		Date:       d,
		Items:      items,
		Status:     sale.StatusCompleted,
	}
}

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCalculateWaitEqualsUnits(t *testing.T) {
	// 3 + 2 bottles sold on March 1 last roughly five days, so the
	// follow-up lands on March 6.
	s := mkSale("sale-1", "cust-1", "2024-03-01", 3, 2)
	today := mustDate(t, "2024-03-10")

	r, ok := Calculate(s, today)
	require.True(t, ok)
	require.Equal(t, 5, r.TotalUnits)
	require.Equal(t, 5, r.WaitDays)
	require.Equal(t, "2024-03-06", r.DueDate.String())
	require.Equal(t, "cust-1_sale-1_2024-03-06", r.Identity)
	require.True(t, r.IsDue)
	require.Equal(t, 4, r.OverdueDays)
	require.Equal(t, 0, r.RemainingDays)
	require.Equal(t, reminder.StatusPending, r.Status)
}

func TestCalculateUpcoming(t *testing.T) {
	s := mkSale("sale-1", "cust-1", "2024-03-01", 3, 2)
	today := mustDate(t, "2024-03-04")

	r, ok := Calculate(s, today)
	require.True(t, ok)
	require.False(t, r.IsDue)
	require.Equal(t, 2, r.RemainingDays)
	require.Equal(t, 0, r.OverdueDays)
}

func TestCalculateDueOnTheDay(t *testing.T) {
	s := mkSale("sale-1", "cust-1", "2024-03-01", 5)

	r, ok := Calculate(s, mustDate(t, "2024-03-06"))
	require.True(t, ok)
	require.True(t, r.IsDue)
	require.Equal(t, 0, r.OverdueDays)
}

func TestCalculateSoftFailures(t *testing.T) {
	today := mustDate(t, "2024-03-10")

	noDate := mkSale("s", "c", "2024-03-01", 3)
	noDate.Date = civil.Date{}
	_, ok := Calculate(noDate, today)
	require.False(t, ok)

	noItems := mkSale("s", "c", "2024-03-01")
	_, ok = Calculate(noItems, today)
	require.False(t, ok)

	zeroUnits := mkSale("s", "c", "2024-03-01", 0, -2)
	_, ok = Calculate(zeroUnits, today)
	require.False(t, ok)
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		isDue   bool
		overdue int
		want    reminder.Priority
	}{
		{false, 0, reminder.PriorityLow},
		{true, 0, reminder.PriorityLow},
		{true, 2, reminder.PriorityLow},
		{true, 3, reminder.PriorityMedium},
		{true, 6, reminder.PriorityMedium},
		{true, 7, reminder.PriorityHigh},
		{true, 30, reminder.PriorityHigh},
	}
	for _, tc := range cases {
		r := reminder.Reminder{IsDue: tc.isDue, OverdueDays: tc.overdue}
		require.Equal(t, tc.want, Classify(r), "isDue=%v overdue=%d", tc.isDue, tc.overdue)
	}
}

func TestClassifyIgnoresStatus(t *testing.T) {
	r := reminder.Reminder{IsDue: true, OverdueDays: 10, Status: reminder.StatusDismissed}
	require.Equal(t, reminder.PriorityHigh, Classify(r))
}

func TestComputeStatsPartitions(t *testing.T) {
	reminders := []reminder.Reminder{
		{Status: reminder.StatusPending, IsDue: true},
		{Status: reminder.StatusPending, IsDue: true},
		{Status: reminder.StatusPending, IsDue: false},
		{Status: reminder.StatusContacted, IsDue: true},
		{Status: reminder.StatusDismissed},
	}

	stats := ComputeStats(reminders)
	require.Equal(t, 5, stats.Total)
	require.Equal(t, 3, stats.Pending)
	require.Equal(t, 2, stats.Overdue)
	require.Equal(t, 1, stats.Upcoming)
	require.Equal(t, 1, stats.Contacted)
	require.Equal(t, 1, stats.Dismissed)

	require.Equal(t, stats.Total, stats.Pending+stats.Contacted+stats.Dismissed)
	require.Equal(t, stats.Pending, stats.Overdue+stats.Upcoming)
}

func TestStatusTransitions(t *testing.T) {
	require.True(t, reminder.StatusPending.CanTransitionTo(reminder.StatusContacted))
	require.True(t, reminder.StatusPending.CanTransitionTo(reminder.StatusDismissed))
	require.True(t, reminder.StatusContacted.CanTransitionTo(reminder.StatusPending))
	require.True(t, reminder.StatusDismissed.CanTransitionTo(reminder.StatusPending))

	require.False(t, reminder.StatusContacted.CanTransitionTo(reminder.StatusDismissed))
	require.False(t, reminder.StatusDismissed.CanTransitionTo(reminder.StatusContacted))
	require.False(t, reminder.StatusPending.CanTransitionTo(reminder.StatusPending))
}
