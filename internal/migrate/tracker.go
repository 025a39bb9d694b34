package migrate

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Record is one row of the tracking table
type Record struct {
	Version   string    `gorm:"primaryKey;column:version"`
	Name      string    `gorm:"column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// Tracker stores which migration versions have been applied
type Tracker struct {
	db    *gorm.DB
	table string
}

// NewTracker creates a tracker writing to table
func NewTracker(db *gorm.DB, table string) *Tracker {
	return &Tracker{
		db:    db,
		table: table,
	}
}

// Initialize creates the tracking table
func (t *Tracker) Initialize(ctx context.Context) error {
	if err := t.db.WithContext(ctx).Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255),
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, t.table)).Error; err != nil {
		return fmt.Errorf("failed to create migration table: %w", err)
	}
	return nil
}

// AppliedVersions returns applied versions in ascending order
func (t *Tracker) AppliedVersions(ctx context.Context) ([]string, error) {
	var versions []string
	if err := t.db.WithContext(ctx).Table(t.table).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	return versions, nil
}

// IsApplied checks if a version is recorded
func (t *Tracker) IsApplied(ctx context.Context, version string) (bool, error) {
	var count int64
	if err := t.db.WithContext(ctx).Table(t.table).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

func (t *Tracker) recordApplied(db *gorm.DB, version, name string) error {
	record := Record{
		Version:   version,
		Name:      name,
		AppliedAt: time.Now().UTC(),
	}
	if err := db.Table(t.table).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

func (t *Tracker) removeApplied(db *gorm.DB, version string) error {
	if err := db.Table(t.table).Where("version = ?", version).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return nil
}
