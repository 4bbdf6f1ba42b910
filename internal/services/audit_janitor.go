package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/guruapp/backend/internal/infrastructure/audit"
)

// JanitorConfig controls how often and how far back audit entries are pruned.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// AuditJanitor prunes audit entries past the retention window on a schedule.
type AuditJanitor struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
}

func NewAuditJanitor(store *audit.Store, logger *zap.Logger, cfg JanitorConfig) *AuditJanitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &AuditJanitor{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, func() {
		if err := j.Prune(); err != nil {
			j.logger.Error("audit prune failed", zap.Error(err))
		}
	})

	return j
}

// Start launches the cron scheduler.
func (j *AuditJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("audit janitor started", zap.Duration("retention", j.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (j *AuditJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("audit janitor stopped")
}

// Prune removes audit entries older than the retention window.
func (j *AuditJanitor) Prune() error {
	if j == nil || j.store == nil {
		return nil
	}
	cutoff := time.Now().Add(-j.cfg.Retention)
	if err := j.store.Cleanup(cutoff); err != nil {
		return err
	}
	if size, err := j.store.Size(); err == nil {
		j.logger.Debug("audit prune completed", zap.Int("remaining", size))
	}
	return nil
}
