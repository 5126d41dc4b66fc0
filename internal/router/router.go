package router

import (
	"strings"

	"stoicbot/internal/store"
	"stoicbot/internal/transport"
	"stoicbot/pkg/logx"
)

const (
	replySubscribed    = "✅ You have subscribed to daily Stoic quotes!"
	replyUnsubscribed  = "❌ You have unsubscribed from daily Stoic quotes."
	replyCountdownHelp = "⏳ Countdown mode ready. Add one with:\n`countdown add 7/4/2026 \"CALIFORNIA\"`"
	replyCountdownBad  = "❌ Format:\n`countdown add 7/4/2026 \"CALIFORNIA\"`"
)

// Router turns inbound text messages into store mutations and reply text.
// Commands are matched case-insensitively on the trimmed message; anything
// that is not a recognized command is left for the prefix command framework
// (handled=false, empty reply).
type Router struct {
	subs *store.Subscriptions
	cds  *store.Countdowns
	log  logx.Logger
}

func New(subs *store.Subscriptions, cds *store.Countdowns, log logx.Logger) *Router {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Router{subs: subs, cds: cds, log: log}
}

// Handle processes one inbound message. It returns the reply text and whether
// the message was consumed; unhandled messages must be passed through
// unmodified.
func (r *Router) Handle(msg *transport.Message) (reply string, handled bool) {
	content := strings.TrimSpace(msg.Text)
	lower := strings.ToLower(content)

	switch {
	case lower == "subscribe":
		if err := r.subs.Add(msg.FromID); err != nil {
			r.log.Error("subscribe persist failed", logx.Err(err), logx.Int64("user", msg.FromID))
		}
		r.log.Info("user subscribed", logx.Int64("user", msg.FromID))
		return replySubscribed, true

	case lower == "unsubscribe":
		if err := r.subs.Remove(msg.FromID); err != nil {
			r.log.Error("unsubscribe persist failed", logx.Err(err), logx.Int64("user", msg.FromID))
		}
		r.log.Info("user unsubscribed", logx.Int64("user", msg.FromID))
		return replyUnsubscribed, true

	case lower == "countdown":
		return replyCountdownHelp, true

	case strings.HasPrefix(lower, "countdown add"):
		return r.handleCountdownAdd(msg, content), true
	}

	return "", false
}

func (r *Router) handleCountdownAdd(msg *transport.Message, content string) string {
	parsed, ok := parseCountdownAdd(content)
	if !ok {
		return replyCountdownBad
	}

	entry := store.CountdownEntry{
		UserID: msg.FromID,
		Date:   parsed.Date.Format("2006-01-02"),
		Name:   parsed.Name,
	}
	if err := r.cds.Append(entry); err != nil {
		r.log.Error("countdown persist failed", logx.Err(err), logx.Int64("user", msg.FromID))
	}
	r.log.Info("countdown added",
		logx.Int64("user", msg.FromID),
		logx.String("name", parsed.Name),
		logx.String("date", entry.Date))

	return "✅ Added countdown **" + parsed.Name + "** for **" + parsed.Date.Format("January 02, 2006") + "**."
}
