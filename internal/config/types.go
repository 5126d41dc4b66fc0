package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Telegram TelegramConfig `json:"telegram"`

	// Timezone is the single IANA zone all triggers are evaluated in.
	Timezone string `json:"timezone,omitempty"`

	// QuoteTime / CountdownTime are local "HH:MM" trigger times.
	QuoteTime     string `json:"quote_time,omitempty"`
	CountdownTime string `json:"countdown_time,omitempty"`

	// CommandPrefix is reserved for the passthrough command framework.
	CommandPrefix string `json:"command_prefix,omitempty"`

	Data     DataConfig     `json:"data,omitempty"`
	Logging  LoggingConfig  `json:"logging,omitempty"`
	Delivery DeliveryConfig `json:"delivery,omitempty"`
	Storage  *StorageConfig `json:"storage,omitempty"`
}

type TelegramConfig struct {
	Token       string `json:"token"`
	PollTimeout string `json:"poll_timeout,omitempty"` // Go duration string
}

// DataConfig locates the durable state files. Files default to well-known
// names under Dir; explicit paths win over Dir.
type DataConfig struct {
	Dir             string `json:"dir,omitempty"`
	SubscribersFile string `json:"subscribers_file,omitempty"`
	CountdownsFile  string `json:"countdowns_file,omitempty"`
	QuotesFile      string `json:"quotes_file,omitempty"`
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"`
	Console *bool         `json:"console,omitempty"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

type DeliveryConfig struct {
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// StorageConfig controls the optional delivery audit log.
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

const (
	defaultTimezone      = "America/Los_Angeles"
	defaultQuoteTime     = "07:30"
	defaultCountdownTime = "06:00"
	defaultCommandPrefix = "!"
	defaultDataDir       = "./data"
)

// applyDefaults fills omitted fields in place.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = defaultTimezone
	}
	if strings.TrimSpace(c.QuoteTime) == "" {
		c.QuoteTime = defaultQuoteTime
	}
	if strings.TrimSpace(c.CountdownTime) == "" {
		c.CountdownTime = defaultCountdownTime
	}
	if c.CommandPrefix == "" {
		c.CommandPrefix = defaultCommandPrefix
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		c.Data.Dir = defaultDataDir
	}
	if strings.TrimSpace(c.Data.SubscribersFile) == "" {
		c.Data.SubscribersFile = filepath.Join(c.Data.Dir, "subscribed_users.json")
	}
	if strings.TrimSpace(c.Data.CountdownsFile) == "" {
		c.Data.CountdownsFile = filepath.Join(c.Data.Dir, "countdowns.csv")
	}
	if strings.TrimSpace(c.Data.QuotesFile) == "" {
		c.Data.QuotesFile = filepath.Join(c.Data.Dir, "quotes.csv")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "INFO"
	}
}

// Validate rejects configs the process cannot start with. The missing-token
// case is the fail-fast startup error from the process contract.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return errors.New("telegram.token is required (set the bot credential in the config file)")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// ConsoleEnabled defaults to true when logging.console is omitted.
func (c *Config) ConsoleEnabled() bool {
	if c.Logging.Console == nil {
		return true
	}
	return *c.Logging.Console
}
