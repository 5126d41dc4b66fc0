// Package storage provides an optional audit log of delivery cycles.
//
// Audit failures are logged by callers and never block or fail a delivery.
package storage
