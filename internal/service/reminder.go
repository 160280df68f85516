package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"yemalin/internal/domain"
	"yemalin/internal/notify"
	"yemalin/internal/repository"
)

// ReminderStage одна ступень напоминаний о брошенной корзине
type ReminderStage struct {
	Stage       int
	After       time.Duration
	DiscountPct int
	Subject     string
}

// DiscountCode e.g. CART24H
func (st ReminderStage) DiscountCode() string {
	return fmt.Sprintf("CART%dH", int(st.After/time.Hour))
}

// ReminderStages in firing order
var ReminderStages = []ReminderStage{
	{Stage: 1, After: time.Hour, DiscountPct: 10, Subject: "Complete Your Purchase - 10% Off"},
	{Stage: 2, After: 24 * time.Hour, DiscountPct: 15, Subject: "Last Chance - 15% Off Your Cart"},
	{Stage: 3, After: 72 * time.Hour, DiscountPct: 20, Subject: "Final Reminder - 20% Off Today Only"},
}

// DueStage returns the reminder to send for c at now. Only the first unsent
// stage is ever considered, so stages fire strictly in order and at most one
// per call, however late the scan runs.
func DueStage(c domain.AbandonedCart, now time.Time) (ReminderStage, bool) {
	if c.Recovered {
		return ReminderStage{}, false
	}
	elapsed := now.Sub(c.AbandonedAt)
	for _, st := range ReminderStages {
		if c.Reminders.Sent(st.Stage) {
			continue
		}
		return st, elapsed >= st.After
	}
	return ReminderStage{}, false
}

const DefaultReminderInterval = 5 * time.Minute

// ReminderScheduler периодически просматривает брошенные корзины и шлёт
// напоминания. Lifecycle: Start/Stop, or Run under a caller-owned context.
type ReminderScheduler struct {
	carts    repository.AbandonedCartRepository
	notifier notify.Notifier
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewReminderScheduler(carts repository.AbandonedCartRepository, notifier notify.Notifier, interval time.Duration) *ReminderScheduler {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &ReminderScheduler{carts: carts, notifier: notifier, interval: interval, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *ReminderScheduler) WithClock(now func() time.Time) *ReminderScheduler {
	s.now = now
	return s
}

// RunOnce performs a single scan and returns how many reminders were fired.
// A failing cart is logged and skipped; only a failed listing is returned.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	carts, err := s.carts.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list abandoned carts: %w", err)
	}
	now := s.now()
	fired := 0
	for _, c := range carts {
		if ctx.Err() != nil {
			return fired, ctx.Err()
		}
		st, due := DueStage(c, now)
		if !due {
			continue
		}
		// flag before notifying: at most one email per stage
		if err := s.carts.MarkReminderSent(ctx, c.Email, st.Stage); err != nil {
			log.Printf("[ERROR] mark reminder %d for %s: %v", st.Stage, c.Email, err)
			continue
		}
		fired++
		err := s.notifier.SendCartReminder(ctx, notify.Reminder{
			Email:        c.Email,
			Stage:        st.Stage,
			Subject:      st.Subject,
			DiscountPct:  st.DiscountPct,
			DiscountCode: st.DiscountCode(),
			Items:        c.Items,
			CartValue:    c.CartValue,
			Urgent:       notify.HasLowStock(c.Items),
		})
		if err != nil {
			log.Printf("[ERROR] send reminder %d to %s: %v", st.Stage, c.Email, err)
		}
	}
	return fired, nil
}

// Run scans immediately and then every interval until ctx is done.
func (s *ReminderScheduler) Run(ctx context.Context) error {
	log.Printf("[INFO] cart reminder scheduler started (every %s)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if n, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[ERROR] reminder scan: %v", err)
		} else if n > 0 {
			log.Printf("[INFO] reminder scan sent %d reminder(s)", n)
		}
		select {
		case <-ctx.Done():
			log.Printf("[INFO] cart reminder scheduler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Start runs the loop in the background. Starting twice is ErrInvalidState.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrInvalidState
	}
	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	s.cancel = cancel
	s.stopped = stopped
	go func() {
		defer func() {
			// parent ctx ended without Stop: clear state so Start works again
			s.mu.Lock()
			if s.stopped == stopped {
				s.cancel, s.stopped = nil, nil
			}
			s.mu.Unlock()
			cancel()
			close(stopped)
		}()
		_ = s.Run(ctx)
	}()
	return nil
}

// Stop cancels the loop and waits for the current scan to finish. Stopping a
// scheduler that is not running is a no-op.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	cancel, stopped := s.cancel, s.stopped
	s.cancel, s.stopped = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

// Running reports whether Start is in effect.
func (s *ReminderScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
