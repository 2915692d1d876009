package service

import (
	"context"
	"time"

	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// Sweeper periodically deletes stale verification codes. Redemption never
// depends on it.
type Sweeper struct {
	store     model.VerificationCodeStore
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

func NewSweeper(store model.VerificationCodeStore, interval, retention time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		store:     store,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    logger.With("component", "sweeper"),
	}
}

// Run sweeps on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep deletes codes that expired, or were used, before now minus retention.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.retention)

	deleted, err := s.store.DeleteExpired(ctx, cutoff)
	if err != nil {
		s.logger.Error("Sweeper: failed to delete expired codes",
			"cutoff", cutoff,
			"error", err.Error())
		return 0
	}

	if deleted > 0 {
		s.logger.Info("Sweeper: deleted expired codes",
			"count", deleted)
	}

	return deleted
}
