package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DeadLetterJournal is the retention side of the dead letter store.
type DeadLetterJournal interface {
	Cleanup(olderThan time.Time) (int, error)
	Size() (int, error)
}

// PurgeRecorder counts dead letters removed by retention.
type PurgeRecorder interface {
	ObserveDeadLettersPurged(n int)
}

type Config struct {
	Schedule  string
	Retention time.Duration
}

// Housekeeper runs periodic maintenance jobs on a cron schedule.
type Housekeeper struct {
	journal  DeadLetterJournal
	recorder PurgeRecorder
	cfg      Config
	cron     *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
}

func New(journal DeadLetterJournal, recorder PurgeRecorder, cfg Config, logger *zap.Logger) (*Housekeeper, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 1h"
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Housekeeper{
		journal:  journal,
		recorder: recorder,
		cfg:      cfg,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		now:      time.Now,
		logger:   logger,
	}
	if _, err := h.cron.AddFunc(cfg.Schedule, func() {
		if _, err := h.PurgeDeadLetters(context.Background()); err != nil {
			h.logger.Error("dead letter cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid housekeeping schedule %q: %w", cfg.Schedule, err)
	}
	return h, nil
}

func (h *Housekeeper) Start() {
	if h == nil || h.cron == nil {
		return
	}
	h.cron.Start()
	h.logger.Info("housekeeping started", zap.String("schedule", h.cfg.Schedule), zap.Duration("retention", h.cfg.Retention))
}

// Stop waits for a running job to finish or for ctx to expire.
func (h *Housekeeper) Stop(ctx context.Context) {
	if h == nil || h.cron == nil {
		return
	}
	stopCtx := h.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	h.logger.Info("housekeeping stopped")
}

// PurgeDeadLetters drops dead letters older than the retention window.
func (h *Housekeeper) PurgeDeadLetters(ctx context.Context) (int, error) {
	if h == nil || h.journal == nil {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cutoff := h.now().Add(-h.cfg.Retention)
	removed, err := h.journal.Cleanup(cutoff)
	if err != nil {
		return removed, err
	}
	if h.recorder != nil {
		h.recorder.ObserveDeadLettersPurged(removed)
	}

	remaining, err := h.journal.Size()
	if err != nil {
		h.logger.Warn("dead letter size check failed", zap.Error(err))
	}
	if removed > 0 || remaining > 0 {
		h.logger.Info("dead letters purged",
			zap.Int("removed", removed),
			zap.Int("remaining", remaining),
			zap.Time("cutoff", cutoff),
		)
	}
	return removed, nil
}
