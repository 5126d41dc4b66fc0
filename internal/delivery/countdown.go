package delivery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"stoicbot/internal/storage"
	"stoicbot/internal/store"
	"stoicbot/internal/transport"
	"stoicbot/pkg/logx"
)

const defaultCountdownName = "COUNTDOWN"

// DeliverCountdowns runs one countdown cycle: group entries by owner, render
// each owner's lines against today's date, send one message per owner, then
// drop every entry of owners whose account is gone. The countdown file is
// rewritten at most once per cycle.
func (e *Engine) DeliverCountdowns(ctx context.Context, now time.Time) {
	entries := e.cds.Entries()
	if len(entries) == 0 {
		return
	}
	started := time.Now()
	today := dateOnly(now)

	owners, byOwner := groupByOwner(entries)
	e.log.Info("sending daily countdowns",
		logx.Int("owners", len(owners)),
		logx.Int("entries", len(entries)))

	var sent, failed, skipped int
	var toDrop []int64
	for _, owner := range owners {
		lines := renderLines(byOwner[owner], today)
		if len(lines) == 0 {
			skipped++
			continue
		}
		message := "# ⏳ Countdown Update\n\n" + strings.Join(lines, "\n")

		if err := e.limiter.Wait(ctx); err != nil {
			e.log.Warn("countdown cycle aborted", logx.Err(err))
			break
		}
		err := e.sender.SendDirect(ctx, owner, message)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, transport.ErrRecipientNotFound):
			failed++
			toDrop = append(toDrop, owner)
			e.log.Info("countdown owner gone, pruning entries", logx.Int64("user", owner))
		default:
			failed++
			e.log.Warn("countdown send failed", logx.Int64("user", owner), logx.Err(err))
		}
	}

	if len(toDrop) > 0 {
		if err := e.cds.RemoveOwners(toDrop); err != nil {
			e.log.Error("countdown prune persist failed", logx.Err(err))
		}
	}

	e.recordAudit(ctx, storage.DeliveryRecord{
		At:         now,
		Kind:       "countdown",
		Recipients: len(owners) - skipped,
		Sent:       sent,
		Failed:     failed,
		Pruned:     len(toDrop),
		TookMS:     time.Since(started).Milliseconds(),
	})
}

// groupByOwner preserves first-seen owner order so delivery order is stable.
func groupByOwner(entries []store.CountdownEntry) ([]int64, map[int64][]store.CountdownEntry) {
	var owners []int64
	byOwner := make(map[int64][]store.CountdownEntry)
	for _, e := range entries {
		if _, seen := byOwner[e.UserID]; !seen {
			owners = append(owners, e.UserID)
		}
		byOwner[e.UserID] = append(byOwner[e.UserID], e)
	}
	return owners, byOwner
}

// renderLines renders one owner's entries. Entries whose stored date fails to
// parse are skipped without aborting the rest.
func renderLines(entries []store.CountdownEntry, today time.Time) []string {
	var lines []string
	for _, e := range entries {
		target, err := time.ParseInLocation("2006-01-02", e.Date, time.UTC)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = defaultCountdownName
		}
		lines = append(lines, renderLine(name, daysBetween(target, today)))
	}
	return lines
}

func renderLine(name string, days int) string {
	switch {
	case days > 1:
		return "**" + name + "**: " + strconv.Itoa(days) + " days left"
	case days == 1:
		return "**" + name + "**: 1 day left"
	case days == 0:
		return "🎉 **" + name + "**: TODAY IS THE DAY!"
	default:
		return "✅ **" + name + "**: passed (" + strconv.Itoa(-days) + " days ago)"
	}
}
