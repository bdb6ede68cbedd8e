// internal/service/reminder/service.go
package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/domain/customer"
	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/domain/sale"
	"github.com/gryphathie/KombuchaApp/internal/pkg/civil"
	xerrors "github.com/gryphathie/KombuchaApp/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	statsCacheKey = "reminders:stats"
	statsCacheTTL = 5 * time.Minute
)

// SaleSource is the read side of the sales ledger.
type SaleSource interface {
	ListAll(ctx context.Context) ([]sale.Sale, error)
}

// CustomerSource is the read side of the customer book.
type CustomerSource interface {
	ListAll(ctx context.Context) ([]customer.Customer, error)
}

// StatusStore is the workflow status overlay: bulk read, keyed upsert.
type StatusStore interface {
	ListAll(ctx context.Context) ([]reminder.StatusRecord, error)
	Upsert(ctx context.Context, rec *reminder.StatusRecord) error
}

// Broadcaster pushes reminder changes to connected UI clients.
type Broadcaster interface {
	ReminderStatusChanged(r reminder.Reminder, stats reminder.Stats)
}

// ReminderService derives reminders from the sales ledger, overlays the
// persisted workflow status, and serves the list, calendar and badge stats.
type ReminderService struct {
	sales     SaleSource
	customers CustomerSource
	statuses  StatusStore
	clock     civil.Clock
	policy    reminder.StatusPolicy
	cache     *redis.Client
	hub       Broadcaster
	logger    *zap.Logger

	// Collapses concurrent loads into one fetch; replaces the shared
	// loader flag the UI layer used to keep.
	loads singleflight.Group
}

func NewReminderService(
	sales SaleSource,
	customers CustomerSource,
	statuses StatusStore,
	clock civil.Clock,
	policy reminder.StatusPolicy,
	cache *redis.Client,
	hub Broadcaster,
	logger *zap.Logger,
) *ReminderService {
	if policy != reminder.PolicyCarryForward {
		policy = reminder.PolicyReset
	}
	return &ReminderService{
		sales:     sales,
		customers: customers,
		statuses:  statuses,
		clock:     clock,
		policy:    policy,
		cache:     cache,
		hub:       hub,
		logger:    logger,
	}
}

type loadResult struct {
	reminders []reminder.Reminder
	sales     []sale.Sale
	stats     reminder.Stats
}

// LoadReminders recomputes the full reminder list and merges the persisted
// status overlay. Any source failing fails the whole load; recomputation is
// cheap and idempotent so callers retry rather than render a partial list.
func (s *ReminderService) LoadReminders(ctx context.Context) ([]reminder.Reminder, reminder.Stats, error) {
	res, err := s.load(ctx)
	if err != nil {
		return nil, reminder.Stats{}, err
	}
	return res.reminders, res.stats, nil
}

// Calendar builds the month grid for month (YYYY-MM) from the current
// reminder list and sales ledger. An empty month means the current one.
func (s *ReminderService) Calendar(ctx context.Context, month string) (reminder.Calendar, error) {
	var monthStart civil.Date
	if month == "" {
		monthStart = s.clock.Today().MonthStart()
	} else {
		var err error
		monthStart, err = civil.ParseDate(month + "-01")
		if err != nil {
			return reminder.Calendar{}, fmt.Errorf("%w: month must be YYYY-MM", xerrors.ErrInvalidInput)
		}
	}

	res, err := s.load(ctx)
	if err != nil {
		return reminder.Calendar{}, err
	}

	return BuildCalendar(monthStart, res.reminders, res.sales, s.clock.Today()), nil
}

// Stats returns the badge counts, served from the redis cache when fresh.
// The cache only trims load frequency for the bell badge; correctness never
// depends on it.
func (s *ReminderService) Stats(ctx context.Context) (reminder.Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached reminder.Stats
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	_, stats, err := s.LoadReminders(ctx)
	return stats, err
}

// SetStatus records an operator action on one reminder and returns the
// patched reminder. The write must succeed before any in-memory state is
// touched; a failed write leaves the list exactly as it was.
func (s *ReminderService) SetStatus(ctx context.Context, identity string, status reminder.Status, notes string) (*reminder.Reminder, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", xerrors.ErrInvalidInput, status)
	}

	res, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range res.reminders {
		if res.reminders[i].Identity == identity {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("reminder %s: %w", identity, xerrors.ErrNotFound)
	}

	current := res.reminders[idx]
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", xerrors.ErrInvalidTransition, current.Status, status)
	}

	rec := &reminder.StatusRecord{
		Identity:   identity,
		CustomerID: current.CustomerID,
		Status:     status,
		Notes:      notes,
	}
	if err := s.statuses.Upsert(ctx, rec); err != nil {
		s.logger.Error("failed to persist reminder status",
			zap.String("identity", identity),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}

	patched := current
	patched.Status = status
	patched.Notes = notes

	// Recompute stats over the patched list for the broadcast and drop the
	// cached badge counts.
	updated := make([]reminder.Reminder, len(res.reminders))
	copy(updated, res.reminders)
	updated[idx] = patched
	stats := ComputeStats(updated)

	s.invalidateStats(ctx)
	if s.hub != nil {
		s.hub.ReminderStatusChanged(patched, stats)
	}

	s.logger.Info("reminder status updated",
		zap.String("identity", identity),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)

	return &patched, nil
}

// load fetches the three sources concurrently and runs the derive/merge
// pipeline. Concurrent callers share one in-flight load, so the fetch is
// detached from the first caller's cancellation: one abandoned request must
// not fail everyone sharing the flight.
func (s *ReminderService) load(ctx context.Context) (*loadResult, error) {
	v, err, _ := s.loads.Do("reminders", func() (interface{}, error) {
		return s.loadOnce(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*loadResult), nil
}

func (s *ReminderService) loadOnce(ctx context.Context) (*loadResult, error) {
	var (
		sales     []sale.Sale
		customers []customer.Customer
		records   []reminder.StatusRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.sales.ListAll(gctx)
		return xerrors.Wrap(err, "fetch sales")
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.ListAll(gctx)
		return xerrors.Wrap(err, "fetch customers")
	})
	g.Go(func() error {
		var err error
		records, err = s.statuses.ListAll(gctx)
		return xerrors.Wrap(err, "fetch status overlay")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.clock.Today()
	derived := Derive(sales, customers, today)
	merged := MergeOverlay(derived, records, s.policy)
	SortByUrgency(merged)

	res := &loadResult{
		reminders: merged,
		sales:     sales,
		stats:     ComputeStats(merged),
	}
	s.cacheStats(ctx, res.stats)
	return res, nil
}

// Derive is the pure first stage: one reminder per customer with at least
// one countable sale, keyed by identity. The most recent sale wins; ties on
// date break on creation time then ID so the result is reproducible.
func Derive(sales []sale.Sale, customers []customer.Customer, today civil.Date) map[string]reminder.Reminder {
	latest := make(map[string]sale.Sale)
	for _, s := range sales {
		prev, ok := latest[s.CustomerID]
		if !ok || saleMoreRecent(s, prev) {
			latest[s.CustomerID] = s
		}
	}

	byID := make(map[string]customer.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	derived := make(map[string]reminder.Reminder)
	for customerID, last := range latest {
		c, ok := byID[customerID]
		if !ok {
			// Orphaned sale: the customer record is gone. Not an error.
			continue
		}

		r, ok := Calculate(last, today)
		if !ok {
			continue
		}

		r.CustomerName = c.Name
		r.CustomerPhone = c.Phone.String
		r.CustomerAddress = c.Address.String
		derived[r.Identity] = r
	}

	return derived
}

// MergeOverlay is the pure second stage: fold the persisted status records
// into the derived map by identity lookup. Under the carry-forward policy a
// reminder with no exact match inherits the customer's most recent record,
// so a dismissal survives the identity churn caused by a new sale.
func MergeOverlay(derived map[string]reminder.Reminder, records []reminder.StatusRecord, policy reminder.StatusPolicy) []reminder.Reminder {
	byIdentity := make(map[string]reminder.StatusRecord, len(records))
	latestByCustomer := make(map[string]reminder.StatusRecord)
	for _, rec := range records {
		byIdentity[rec.Identity] = rec
		if prev, ok := latestByCustomer[rec.CustomerID]; !ok || rec.UpdatedAt.After(prev.UpdatedAt) {
			latestByCustomer[rec.CustomerID] = rec
		}
	}

	merged := make([]reminder.Reminder, 0, len(derived))
	for _, r := range derived {
		if rec, ok := byIdentity[r.Identity]; ok {
			r.Status = rec.Status
			r.Notes = rec.Notes
		} else if policy == reminder.PolicyCarryForward {
			if rec, ok := latestByCustomer[r.CustomerID]; ok {
				r.Status = rec.Status
				r.Notes = rec.Notes
			}
		}
		merged = append(merged, r)
	}

	// Canonical base order before the urgency sort so equal keys stay in a
	// deterministic relative order.
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CustomerID < merged[j].CustomerID
	})

	return merged
}

// SortByUrgency orders the list for display: overdue before upcoming, the
// most overdue first, the soonest-due upcoming first. Stable.
func SortByUrgency(reminders []reminder.Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if a.IsDue != b.IsDue {
			return a.IsDue
		}
		if a.IsDue {
			return a.OverdueDays > b.OverdueDays
		}
		return a.RemainingDays < b.RemainingDays
	})
}

func saleMoreRecent(a, b sale.Sale) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *ReminderService) cacheStats(ctx context.Context, stats reminder.Stats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache reminder stats", zap.Error(err))
	}
}

func (s *ReminderService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate reminder stats cache", zap.Error(err))
	}
}
