package migrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runner applies and reverts migrations against one database
type Runner struct {
	db       *gorm.DB
	registry *Registry
	tracker  *Tracker
	logger   *zap.Logger
}

// NewRunner creates a migration runner
func NewRunner(db *gorm.DB, registry *Registry, tracker *Tracker, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		db:       db,
		registry: registry,
		tracker:  tracker,
		logger:   logger,
	}
}

// Migrate applies all pending migrations in version order and returns how many ran.
// Each migration and its tracking row are committed together.
func (r *Runner) Migrate(ctx context.Context) (int, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for i, m := range pending {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return r.tracker.recordApplied(tx, m.Version(), m.Name())
		})
		if err != nil {
			return i, fmt.Errorf("failed to apply migration %s: %w", m.Version(), err)
		}
		r.logger.Info("applied migration", zap.String("version", m.Version()), zap.String("name", m.Name()))
	}

	return len(pending), nil
}

// Rollback reverts the last n applied migrations, newest first
func (r *Runner) Rollback(ctx context.Context, n int) (int, error) {
	applied, err := r.tracker.AppliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	if len(applied) == 0 {
		return 0, fmt.Errorf("no migrations to rollback")
	}

	if n > len(applied) {
		n = len(applied)
	}

	done := 0
	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		version := applied[i]
		m, ok := r.registry.Get(version)
		if !ok {
			return done, fmt.Errorf("migration %s not found in registry", version)
		}

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return r.tracker.removeApplied(tx, version)
		})
		if err != nil {
			return done, fmt.Errorf("failed to rollback migration %s: %w", version, err)
		}
		r.logger.Info("rolled back migration", zap.String("version", version), zap.String("name", m.Name()))
		done++
	}

	return done, nil
}

// Pending returns registered migrations that have not been applied
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := r.tracker.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedMap[v] = true
	}

	var pending []Migration
	for _, m := range r.registry.All() {
		if !appliedMap[m.Version()] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Applied returns applied migrations that are still registered
func (r *Runner) Applied(ctx context.Context) ([]Migration, error) {
	applied, err := r.tracker.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, v := range applied {
		if m, ok := r.registry.Get(v); ok {
			migrations = append(migrations, m)
		}
	}
	return migrations, nil
}
