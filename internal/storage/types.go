package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures the delivery audit log.
//
// Driver values:
//   - "file": dependency-free JSON Lines backend
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", auditing is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// DeliveryRecord summarizes one fan-out cycle.
// Keep it compact and schema-stable.
type DeliveryRecord struct {
	At         time.Time
	Kind       string // "quote" or "countdown"
	Recipients int
	Sent       int
	Failed     int
	Pruned     int
	TookMS     int64
}
