package app

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"stoicbot/pkg/logx"
)

// notifyReady tells systemd the bot is up. Harmless no-op outside systemd
// (NOTIFY_SOCKET unset).
func notifyReady(log logx.Logger) {
	ack, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warn("sd_notify failed", logx.Err(err))
		return
	}
	if ack {
		log.Info("systemd notified ready")
	}
}

func notifyStopping(log logx.Logger) {
	if _, err := daemon.SdNotify(false, daemon.SdNotifyStopping); err != nil {
		log.Warn("sd_notify stopping failed", logx.Err(err))
	}
}

// watchdogLoop pings the systemd watchdog at half the configured interval.
// Returns immediately when no watchdog is configured.
func watchdogLoop(ctx context.Context, log logx.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval <= 0 {
		return
	}
	t := time.NewTicker(interval / 2)
	defer t.Stop()
	log.Info("systemd watchdog enabled", logx.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}
