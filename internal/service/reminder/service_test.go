package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/domain/customer"
	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSales struct {
	sales []sale.Sale
	err   error
}

func (s *stubSales) ListAll(ctx context.Context) ([]sale.Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sales, s.err
}

type stubCustomers struct {
	customers []customer.Customer
}

func (s *stubCustomers) ListAll(ctx context.Context) ([]customer.Customer, error) {
	return s.customers, nil
}

type stubStatuses struct {
	records   []reminder.StatusRecord
	upsertErr error
	upserts   []reminder.StatusRecord
}

func (s *stubStatuses) ListAll(ctx context.Context) ([]reminder.StatusRecord, error) {
	return s.records, nil
}

func (s *stubStatuses) Upsert(ctx context.Context, rec *reminder.StatusRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	rec.UpdatedAt = time.Now()
	s.upserts = append(s.upserts, *rec)
	s.records = append(s.records, *rec)
	return nil
}

type stubHub struct {
	reminders []reminder.Reminder
	stats     []reminder.Stats
}

func (h *stubHub) ReminderStatusChanged(r reminder.Reminder, stats reminder.Stats) {
	h.reminders = append(h.reminders, r)
	h.stats = append(h.stats, stats)
}

func newTestService(t *testing.T, sales *stubSales, customers *stubCustomers, statuses *stubStatuses, policy reminder.StatusPolicy, hub Broadcaster) *ReminderService {
	t.Helper()
	clock := civil.FixedClock{Date: mustDate(t, "2024-03-10")}
	return NewReminderService(sales, customers, statuses, clock, policy, nil, hub, zap.NewNop())
}

func TestDeriveOneReminderPerCustomerFromLatestSale(t *testing.T) {
	today := mustDate(t, "2024-03-10")
	old := mkSale("s-old", "c1", "2024-01-01", 2)
	newer := mkSale("s-new", "c1", "2024-02-01", 3)

	derived := Derive(
		[]sale.Sale{old, newer},
		[]customer.Customer{{ID: "c1", Name: "Ana"}},
		today,
	)

	require.Len(t, derived, 1)
	r, ok := derived["c1_s-new_2024-02-04"]
	require.True(t, ok)
	require.Equal(t, "Ana", r.CustomerName)
	require.Equal(t, "s-new", r.SourceSaleID)
	require.Equal(t, 3, r.WaitDays)
}

func TestDeriveTieBreaksOnCreationTimeThenID(t *testing.T) {
	today := mustDate(t, "2024-03-10")

	a := mkSale("s-a", "c1", "2024-02-01", 1)
	a.CreatedAt = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	b := mkSale("s-b", "c1", "2024-02-01", 2)
	b.CreatedAt = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	derived := Derive([]sale.Sale{a, b}, []customer.Customer{{ID: "c1"}}, today)
	require.Contains(t, derived, "c1_s-b_2024-02-03")

	// Same creation time: highest ID wins, regardless of input order.
	b.CreatedAt = a.CreatedAt
	derived = Derive([]sale.Sale{b, a}, []customer.Customer{{ID: "c1"}}, today)
	require.Contains(t, derived, "c1_s-b_2024-02-03")
}

func TestDeriveSkipsOrphanedSalesAndZeroUnitSales(t *testing.T) {
	today := mustDate(t, "2024-03-10")
	sales := []sale.Sale{
		mkSale("s1", "c1", "2024-02-01", 3),
		mkSale("s2", "gone", "2024-02-01", 3), // customer deleted
		mkSale("s3", "c2", "2024-02-01", 0),   // nothing countable
	}
	customers := []customer.Customer{{ID: "c1"}, {ID: "c2"}}

	derived := Derive(sales, customers, today)
	require.Len(t, derived, 1)
	require.Contains(t, derived, "c1_s1_2024-02-04")
}

func TestMergeOverlayResetPolicy(t *testing.T) {
	derived := map[string]reminder.Reminder{
		"c1_s2_2024-03-06": {Identity: "c1_s2_2024-03-06", CustomerID: "c1", Status: reminder.StatusPending},
	}
	// Record from the superseded identity only.
	records := []reminder.StatusRecord{
		{Identity: "c1_s1_2024-02-04", CustomerID: "c1", Status: reminder.StatusDismissed},
	}

	merged := MergeOverlay(derived, records, reminder.PolicyReset)
	require.Len(t, merged, 1)
	require.Equal(t, reminder.StatusPending, merged[0].Status)
}

func TestMergeOverlayCarryForwardPolicy(t *testing.T) {
	derived := map[string]reminder.Reminder{
		"c1_s2_2024-03-06": {Identity: "c1_s2_2024-03-06", CustomerID: "c1", Status: reminder.StatusPending},
	}
	records := []reminder.StatusRecord{
		{Identity: "c1_s0_2024-01-10", CustomerID: "c1", Status: reminder.StatusContacted, UpdatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{Identity: "c1_s1_2024-02-04", CustomerID: "c1", Status: reminder.StatusDismissed, Notes: "moved away", UpdatedAt: time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)},
	}

	merged := MergeOverlay(derived, records, reminder.PolicyCarryForward)
	require.Len(t, merged, 1)
	require.Equal(t, reminder.StatusDismissed, merged[0].Status)
	require.Equal(t, "moved away", merged[0].Notes)
}

func TestMergeOverlayExactMatchWinsOverCarryForward(t *testing.T) {
	derived := map[string]reminder.Reminder{
		"c1_s2_2024-03-06": {Identity: "c1_s2_2024-03-06", CustomerID: "c1", Status: reminder.StatusPending},
	}
	records := []reminder.StatusRecord{
		{Identity: "c1_s2_2024-03-06", CustomerID: "c1", Status: reminder.StatusContacted, UpdatedAt: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)},
		{Identity: "c1_s1_2024-02-04", CustomerID: "c1", Status: reminder.StatusDismissed, UpdatedAt: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)},
	}

	merged := MergeOverlay(derived, records, reminder.PolicyCarryForward)
	require.Equal(t, reminder.StatusContacted, merged[0].Status)
}

func TestSortByUrgency(t *testing.T) {
	reminders := []reminder.Reminder{
		{Identity: "upcoming-far", RemainingDays: 9},
		{Identity: "overdue-little", IsDue: true, OverdueDays: 1},
		{Identity: "upcoming-soon", RemainingDays: 2},
		{Identity: "overdue-much", IsDue: true, OverdueDays: 12},
	}

	SortByUrgency(reminders)

	order := make([]string, 0, len(reminders))
	for _, r := range reminders {
		order = append(order, r.Identity)
	}
	require.Equal(t, []string{"overdue-much", "overdue-little", "upcoming-soon", "upcoming-far"}, order)
}

func TestLoadReminders(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{
		mkSale("s1", "c1", "2024-03-01", 3, 2), // due 2024-03-06, overdue 4
		mkSale("s2", "c2", "2024-03-08", 5),    // due 2024-03-13, upcoming
	}}
	customers := &stubCustomers{customers: []customer.Customer{
		{ID: "c1", Name: "Ana"},
		{ID: "c2", Name: "Benito"},
	}}
	statuses := &stubStatuses{}

	svc := newTestService(t, sales, customers, statuses, reminder.PolicyReset, nil)

	reminders, stats, err := svc.LoadReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	require.Equal(t, "Ana", reminders[0].CustomerName)
	require.Equal(t, "Benito", reminders[1].CustomerName)

	require.Equal(t, 2, stats.Total)
	require.Equal(t, 2, stats.Pending)
	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 1, stats.Upcoming)
}

func TestLoadRemindersIsIdempotent(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{
		mkSale("s1", "c1", "2024-03-01", 3, 2),
		mkSale("s2", "c2", "2024-03-08", 5),
		mkSale("s3", "c3", "2024-02-20", 1),
	}}
	customers := &stubCustomers{customers: []customer.Customer{
		{ID: "c1", Name: "Ana"},
		{ID: "c2", Name: "Benito"},
		{ID: "c3", Name: "Carla"},
	}}
	statuses := &stubStatuses{records: []reminder.StatusRecord{
		{Identity: "c3_s3_2024-02-21", CustomerID: "c3", Status: reminder.StatusContacted},
	}}

	svc := newTestService(t, sales, customers, statuses, reminder.PolicyReset, nil)

	first, firstStats, err := svc.LoadReminders(context.Background())
	require.NoError(t, err)
	second, secondStats, err := svc.LoadReminders(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, firstStats, secondStats)
}

func TestLoadRemindersSurvivesCallerCancellation(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{mkSale("s1", "c1", "2024-03-01", 5)}}
	customers := &stubCustomers{customers: []customer.Customer{{ID: "c1", Name: "Ana"}}}

	svc := newTestService(t, sales, customers, &stubStatuses{}, reminder.PolicyReset, nil)

	// A caller that navigated away must not poison the shared load for
	// everyone else riding the same flight.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reminders, _, err := svc.LoadReminders(ctx)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
}

func TestLoadRemindersFailsWhenASourceFails(t *testing.T) {
	sales := &stubSales{err: errors.New("connection refused")}
	svc := newTestService(t, sales, &stubCustomers{}, &stubStatuses{}, reminder.PolicyReset, nil)

	_, _, err := svc.LoadReminders(context.Background())
	require.Error(t, err)
}

func TestSetStatus(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{mkSale("s1", "c1", "2024-03-01", 5)}}
	customers := &stubCustomers{customers: []customer.Customer{{ID: "c1", Name: "Ana"}}}
	statuses := &stubStatuses{}
	hub := &stubHub{}

	svc := newTestService(t, sales, customers, statuses, reminder.PolicyReset, hub)
	identity := "c1_s1_2024-03-06"

	patched, err := svc.SetStatus(context.Background(), identity, reminder.StatusContacted, "left a message")
	require.NoError(t, err)
	require.Equal(t, reminder.StatusContacted, patched.Status)
	require.Equal(t, "left a message", patched.Notes)

	require.Len(t, statuses.upserts, 1)
	require.Equal(t, identity, statuses.upserts[0].Identity)
	require.Equal(t, "c1", statuses.upserts[0].CustomerID)

	require.Len(t, hub.reminders, 1)
	require.Equal(t, 1, hub.stats[0].Contacted)
	require.Equal(t, 0, hub.stats[0].Pending)

	// The overlay is persisted, so a reload sees the new status.
	reminders, _, err := svc.LoadReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, reminder.StatusContacted, reminders[0].Status)
}

func TestSetStatusIdempotentReapply(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{mkSale("s1", "c1", "2024-03-01", 5)}}
	customers := &stubCustomers{customers: []customer.Customer{{ID: "c1"}}}
	statuses := &stubStatuses{}

	svc := newTestService(t, sales, customers, statuses, reminder.PolicyReset, nil)
	identity := "c1_s1_2024-03-06"

	_, err := svc.SetStatus(context.Background(), identity, reminder.StatusDismissed, "")
	require.NoError(t, err)

	// Same transition again is rejected by the state machine.
	_, err = svc.SetStatus(context.Background(), identity, reminder.StatusDismissed, "")
	require.ErrorIs(t, err, xerrors.ErrInvalidTransition)

	// Reactivation goes back through pending.
	_, err = svc.SetStatus(context.Background(), identity, reminder.StatusPending, "")
	require.NoError(t, err)
}

func TestSetStatusRejectsInvalidInput(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{mkSale("s1", "c1", "2024-03-01", 5)}}
	customers := &stubCustomers{customers: []customer.Customer{{ID: "c1"}}}

	svc := newTestService(t, sales, customers, &stubStatuses{}, reminder.PolicyReset, nil)

	_, err := svc.SetStatus(context.Background(), "c1_s1_2024-03-06", reminder.Status("archived"), "")
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	_, err = svc.SetStatus(context.Background(), "no-such-identity", reminder.StatusContacted, "")
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSetStatusWriteFailureLeavesStateUntouched(t *testing.T) {
	sales := &stubSales{sales: []sale.Sale{mkSale("s1", "c1", "2024-03-01", 5)}}
	customers := &stubCustomers{customers: []customer.Customer{{ID: "c1"}}}
	statuses := &stubStatuses{upsertErr: errors.New("write timeout")}
	hub := &stubHub{}

	svc := newTestService(t, sales, customers, statuses, reminder.PolicyReset, hub)

	_, err := svc.SetStatus(context.Background(), "c1_s1_2024-03-06", reminder.StatusContacted, "")
	require.Error(t, err)
	require.Empty(t, hub.reminders)

	reminders, _, err := svc.LoadReminders(context.Background())
	require.NoError(t, err)
	require.Equal(t, reminder.StatusPending, reminders[0].Status)
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	svc := newTestService(t, &stubSales{}, &stubCustomers{}, &stubStatuses{}, reminder.PolicyReset, nil)

	_, err := svc.Calendar(context.Background(), "March 2024")
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCalendarDefaultsToCurrentMonth(t *testing.T) {
	svc := newTestService(t, &stubSales{}, &stubCustomers{}, &stubStatuses{}, reminder.PolicyReset, nil)

	cal, err := svc.Calendar(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "2024-03", cal.Month)
}
