package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stoicbot/pkg/logx"
)

// Trigger fires once per day at a fixed local hour:minute. Fire runs on the
// scheduler goroutine; it receives the tick's wall-clock time in the
// scheduler's location.
type Trigger struct {
	Name   string
	Hour   int
	Minute int
	Fire   func(now time.Time)
}

// shouldFire is re-derived every tick rather than stored: with one tick per
// minute, a matching tick fires at most once per day. A restart inside the
// trigger minute can double-fire; that is a documented limitation, not masked.
func (t Trigger) shouldFire(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

// Service wakes once a minute (cron drives the wake-ups in the configured
// location) and runs every trigger whose window matches. The clock is
// injectable for tests; cron only supplies wake-ups.
type Service struct {
	mu       sync.Mutex
	log      logx.Logger
	loc      *time.Location
	c        *cron.Cron
	triggers []Trigger
	now      func() time.Time
}

func New(loc *time.Location, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{log: log, loc: loc, now: time.Now}
}

func (s *Service) AddTrigger(t Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = append(s.triggers, t)
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}
	s.c = cron.New(cron.WithLocation(s.loc))
	if _, err := s.c.AddFunc("* * * * *", func() {
		s.tick(s.now().In(s.loc))
	}); err != nil {
		s.c = nil
		return err
	}
	s.c.Start()
	s.log.Info("scheduler started",
		logx.String("tz", s.loc.String()),
		logx.Int("triggers", len(s.triggers)))
	return nil
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

func (s *Service) tick(now time.Time) {
	s.mu.Lock()
	triggers := append([]Trigger(nil), s.triggers...)
	s.mu.Unlock()

	for _, t := range triggers {
		if !t.shouldFire(now) {
			continue
		}
		s.log.Info("trigger fired", logx.String("trigger", t.Name), logx.Time("at", now))
		t.Fire(now)
	}
}

// ParseClock parses a "HH:MM" trigger time.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("clock %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("clock %q: bad hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock %q: bad minute", s)
	}
	return hour, minute, nil
}
