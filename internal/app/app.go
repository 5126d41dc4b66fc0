package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stoicbot/internal/config"
	"stoicbot/internal/delivery"
	"stoicbot/internal/quotes"
	"stoicbot/internal/router"
	"stoicbot/internal/scheduler"
	"stoicbot/internal/storage"
	"stoicbot/internal/store"
	"stoicbot/internal/transport"
	"stoicbot/internal/transport/telegram"
	"stoicbot/pkg/logx"
)

// App owns the single live instance of every store and service for the
// process lifetime and wires inbound updates to the router and trigger fires
// to the delivery engine.
type App struct {
	cfgm *config.Manager
	cfg  *config.Config

	logs *logx.Service
	log  logx.Logger

	adapter *telegram.Adapter
	subs    *store.Subscriptions
	cds     *store.Countdowns
	catalog *quotes.Catalog
	audit   storage.Store
	engine  *delivery.Engine
	rt      *router.Router
	sched   *scheduler.Service

	loc     *time.Location
	updates chan transport.Update

	runCancel context.CancelFunc
	runWG     sync.WaitGroup
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logs, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.ConsoleEnabled(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log = log.With(logx.String("comp", "app"))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}

	pollTimeout := 10 * time.Second
	if raw := strings.TrimSpace(cfg.Telegram.PollTimeout); raw != "" {
		pollTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("telegram.poll_timeout: %w", err)
		}
	}
	adapter, err := telegram.New(telegram.Config{
		Token:       cfg.Telegram.Token,
		PollTimeout: pollTimeout,
	}, logs.Logger().With(logx.String("comp", "telegram")))
	if err != nil {
		return nil, err
	}

	subs, err := store.OpenSubscriptions(cfg.Data.SubscribersFile, logs.Logger().With(logx.String("comp", "store")))
	if err != nil {
		return nil, err
	}
	cds, err := store.OpenCountdowns(cfg.Data.CountdownsFile, logs.Logger().With(logx.String("comp", "store")))
	if err != nil {
		return nil, err
	}
	catalog, err := quotes.LoadCatalog(cfg.Data.QuotesFile)
	if err != nil {
		return nil, err
	}

	var audit storage.Store
	if cfg.Storage != nil {
		busy := time.Duration(0)
		if raw := strings.TrimSpace(cfg.Storage.BusyTimeout); raw != "" {
			busy, err = time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("storage.busy_timeout: %w", err)
			}
		}
		audit, err = storage.Open(storage.Config{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			BusyTimeout: busy,
		}, logs.Logger().With(logx.String("comp", "storage")))
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	}

	engine := delivery.New(
		delivery.Config{RatePerSec: cfg.Delivery.RatePerSec},
		adapter, subs, cds, catalog, audit,
		logs.Logger().With(logx.String("comp", "delivery")),
	)
	rt := router.New(subs, cds, logs.Logger().With(logx.String("comp", "router")))
	sched := scheduler.New(loc, logs.Logger().With(logx.String("comp", "scheduler")))

	log.Info("state loaded",
		logx.Int("subscribers", subs.Len()),
		logx.Int("countdown_rows", cds.Len()),
		logx.Int("quotes", catalog.Len()))

	return &App{
		cfgm:    cfgm,
		cfg:     cfg,
		logs:    logs,
		log:     log,
		adapter: adapter,
		subs:    subs,
		cds:     cds,
		catalog: catalog,
		audit:   audit,
		engine:  engine,
		rt:      rt,
		sched:   sched,
		loc:     loc,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.runCancel = cancel

	quoteH, quoteM, err := scheduler.ParseClock(a.cfg.QuoteTime)
	if err != nil {
		return fmt.Errorf("quote_time: %w", err)
	}
	cdH, cdM, err := scheduler.ParseClock(a.cfg.CountdownTime)
	if err != nil {
		return fmt.Errorf("countdown_time: %w", err)
	}
	a.sched.AddTrigger(scheduler.Trigger{
		Name: "daily-quote", Hour: quoteH, Minute: quoteM,
		Fire: func(now time.Time) { a.engine.DeliverQuote(runCtx, now) },
	})
	a.sched.AddTrigger(scheduler.Trigger{
		Name: "daily-countdowns", Hour: cdH, Minute: cdM,
		Fire: func(now time.Time) { a.engine.DeliverCountdowns(runCtx, now) },
	})

	a.updates = make(chan transport.Update, 256)
	if err := a.adapter.Start(runCtx, a.updates); err != nil {
		return err
	}
	if err := a.sched.Start(runCtx); err != nil {
		return err
	}

	// Single consumer goroutine: command handling never interleaves
	// mid-mutation.
	a.runWG.Add(1)
	go func() {
		defer a.runWG.Done()
		a.routeLoop(runCtx)
	}()

	// Config hot reload: only the logging section is applied live.
	a.runWG.Add(2)
	go func() {
		defer a.runWG.Done()
		_ = a.cfgm.Watch(runCtx)
	}()
	changes := a.cfgm.Subscribe(1)
	go func() {
		defer a.runWG.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case cfg := <-changes:
				if cfg == nil {
					continue
				}
				a.logs.Apply(logx.Config{
					Level:   cfg.Logging.Level,
					Console: cfg.ConsoleEnabled(),
					File: logx.FileConfig{
						Enabled: cfg.Logging.File.Enabled,
						Path:    cfg.Logging.File.Path,
					},
				})
				a.log.Info("logging config reloaded", logx.String("level", cfg.Logging.Level))
			}
		}
	}()

	notifyReady(a.log)
	a.runWG.Add(1)
	go func() {
		defer a.runWG.Done()
		watchdogLoop(runCtx, a.log)
	}()

	a.log.Info("bot started",
		logx.String("tz", a.loc.String()),
		logx.String("quote_time", a.cfg.QuoteTime),
		logx.String("countdown_time", a.cfg.CountdownTime))
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	notifyStopping(a.log)
	if a.runCancel != nil {
		a.runCancel()
	}
	a.sched.Stop(ctx)
	err := a.adapter.Stop(ctx)
	a.runWG.Wait()
	if a.audit != nil {
		_ = a.audit.Close()
	}
	_ = a.logs.Close()
	return err
}

func (a *App) routeLoop(ctx context.Context) {
	prefix := a.cfg.CommandPrefix
	for {
		select {
		case <-ctx.Done():
			return
		case up := <-a.updates:
			msg := up.Message
			if msg == nil {
				continue
			}
			reply, handled := a.rt.Handle(msg)
			if handled {
				if err := a.adapter.Reply(ctx, msg, reply); err != nil {
					a.log.Warn("reply failed", logx.Int64("chat", msg.ChatID), logx.Err(err))
				}
				continue
			}
			// Passthrough: leave the message to the prefix command framework.
			if prefix != "" && strings.HasPrefix(strings.TrimSpace(msg.Text), prefix) {
				a.log.Debug("prefix command passed through",
					logx.Int64("user", msg.FromID),
					logx.String("text", msg.Text))
			}
		}
	}
}
