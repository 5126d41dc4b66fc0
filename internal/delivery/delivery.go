package delivery

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"stoicbot/internal/storage"
	"stoicbot/internal/store"
	"stoicbot/pkg/logx"
)

// Sender is the outbound half of the transport adapter.
type Sender interface {
	SendDirect(ctx context.Context, userID int64, text string) error
}

// SubscriberSet is the view of the subscription store the engine needs:
// snapshot membership before the fan-out, prune in one batch after it.
type SubscriberSet interface {
	Snapshot() []int64
	RemoveBatch(ids []int64) error
}

// CountdownTable is the corresponding view of the countdown store.
type CountdownTable interface {
	Entries() []store.CountdownEntry
	RemoveOwners(owners []int64) error
}

// Catalog resolves a day-key to raw quote text.
type Catalog interface {
	Lookup(dayKey string) (string, bool)
}

type Config struct {
	// RatePerSec paces outbound direct messages; 0 falls back to a safe
	// default. This is pacing only, never a retry mechanism.
	RatePerSec int
}

// Engine performs the two daily fan-outs. It never holds a store lock across
// a transport call: membership is snapshotted up front and pruning re-enters
// the store once the fan-out is complete.
type Engine struct {
	cfg     Config
	sender  Sender
	subs    SubscriberSet
	cds     CountdownTable
	catalog Catalog
	audit   storage.Store
	limiter *rate.Limiter
	log     logx.Logger
}

func New(cfg Config, sender Sender, subs SubscriberSet, cds CountdownTable, catalog Catalog, audit storage.Store, log logx.Logger) *Engine {
	if log.IsZero() {
		log = logx.Nop()
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 10
	}
	return &Engine{
		cfg:     cfg,
		sender:  sender,
		subs:    subs,
		cds:     cds,
		catalog: catalog,
		audit:   audit,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}
}

func (e *Engine) recordAudit(ctx context.Context, r storage.DeliveryRecord) {
	if e.audit == nil {
		return
	}
	if err := e.audit.AppendDelivery(ctx, r); err != nil {
		e.log.Warn("audit append failed", logx.Err(err), logx.String("kind", r.Kind))
	}
}

// dateOnly strips the time-of-day component, keeping only the calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference target-today for two
// dateOnly values.
func daysBetween(target, today time.Time) int {
	return int(target.Sub(today) / (24 * time.Hour))
}
