package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
)

// HousekeepingService periodically deletes sessions past their expiry.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	// OnSweep runs after each successful sweep so coordinators of deleted
	// sessions can be reaped.
	OnSweep func(ctx context.Context)

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    s,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one cleanup pass and returns the number of sessions removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}
	if s.OnSweep != nil {
		s.OnSweep(ctx)
	}
	s.Logger.Info("housekeeping sweep completed", "expired_sessions", n)
	return n
}
