package delivery

import (
	"context"
	"errors"
	"time"

	"stoicbot/internal/quotes"
	"stoicbot/internal/storage"
	"stoicbot/internal/transport"
	"stoicbot/pkg/logx"
)

// DeliverQuote runs one daily-quote cycle: resolve today's quote, fan it out
// to every current subscriber, then prune recipients the platform reported as
// gone. One recipient's failure never aborts delivery to the rest, and the
// subscriber file is rewritten at most once per cycle.
func (e *Engine) DeliverQuote(ctx context.Context, now time.Time) {
	started := time.Now()

	dayKey := quotes.DayKey(now)
	text, ok := e.catalog.Lookup(dayKey)
	if !ok {
		text = quotes.FallbackText
	}
	message := "# 📖 Daily Stoic Quote - " + dayKey + "\n\n" + quotes.Format(text)

	recipients := e.subs.Snapshot()
	e.log.Info("sending daily quote",
		logx.String("day", dayKey),
		logx.Int("subscribers", len(recipients)))

	var sent, failed int
	var toRemove []int64
	for _, userID := range recipients {
		if err := e.limiter.Wait(ctx); err != nil {
			e.log.Warn("quote cycle aborted", logx.Err(err))
			break
		}
		err := e.sender.SendDirect(ctx, userID, message)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, transport.ErrRecipientNotFound):
			failed++
			toRemove = append(toRemove, userID)
			e.log.Info("subscriber gone, pruning", logx.Int64("user", userID))
		default:
			failed++
			e.log.Warn("quote send failed", logx.Int64("user", userID), logx.Err(err))
		}
	}

	if len(toRemove) > 0 {
		if err := e.subs.RemoveBatch(toRemove); err != nil {
			e.log.Error("subscriber prune persist failed", logx.Err(err))
		}
	}

	e.recordAudit(ctx, storage.DeliveryRecord{
		At:         now,
		Kind:       "quote",
		Recipients: len(recipients),
		Sent:       sent,
		Failed:     failed,
		Pruned:     len(toRemove),
		TookMS:     time.Since(started).Milliseconds(),
	})
}
