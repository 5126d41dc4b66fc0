package scheduler

import (
	"testing"
	"time"

	"stoicbot/pkg/logx"
)

func at(h, m int) time.Time {
	return time.Date(2026, time.July, 1, h, m, 30, 0, time.UTC)
}

func TestShouldFire(t *testing.T) {
	t.Parallel()
	tr := Trigger{Hour: 7, Minute: 30}
	tests := []struct {
		now  time.Time
		want bool
	}{
		{at(7, 30), true},
		{at(7, 29), false},
		{at(7, 31), false},
		{at(6, 30), false},
		{at(8, 30), false},
		{at(0, 0), false},
	}
	for _, tt := range tests {
		if got := tr.shouldFire(tt.now); got != tt.want {
			t.Errorf("shouldFire(%v) = %v, want %v", tt.now.Format("15:04"), got, tt.want)
		}
	}
}

func TestTickFiresOnlyMatchingTriggers(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, logx.Nop())

	var quoteFired, countdownFired int
	s.AddTrigger(Trigger{Name: "quote", Hour: 7, Minute: 30, Fire: func(time.Time) { quoteFired++ }})
	s.AddTrigger(Trigger{Name: "countdown", Hour: 6, Minute: 0, Fire: func(time.Time) { countdownFired++ }})

	// A full day of minute ticks fires each trigger exactly once.
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s.tick(at(h, m))
		}
	}
	if quoteFired != 1 {
		t.Fatalf("quote fired %d times, want 1", quoteFired)
	}
	if countdownFired != 1 {
		t.Fatalf("countdown fired %d times, want 1", countdownFired)
	}
}

func TestTickOutsideWindowIsNoOp(t *testing.T) {
	t.Parallel()
	s := New(time.UTC, logx.Nop())
	fired := false
	s.AddTrigger(Trigger{Name: "quote", Hour: 7, Minute: 30, Fire: func(time.Time) { fired = true }})
	s.tick(at(12, 0))
	if fired {
		t.Fatal("trigger fired outside its window")
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{in: "07:30", h: 7, m: 30},
		{in: "6:00", h: 6, m: 0},
		{in: "23:59", h: 23, m: 59},
		{in: " 0:05 ", h: 0, m: 5},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "07", wantErr: true},
		{in: "7:30:00", wantErr: true},
	}
	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) accepted, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if h != tt.h || m != tt.m {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.h, tt.m)
		}
	}
}
