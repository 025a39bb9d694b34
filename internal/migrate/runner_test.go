package migrate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testTable = "_test_migrations"

// testMigration implements the Migration interface
type testMigration struct {
	version  string
	name     string
	upFunc   func(*gorm.DB) error
	downFunc func(*gorm.DB) error
}

func (m testMigration) Version() string { return m.version }
func (m testMigration) Name() string    { return m.name }
func (m testMigration) Up(db *gorm.DB) error {
	if m.upFunc != nil {
		return m.upFunc(db)
	}
	return nil
}
func (m testMigration) Down(db *gorm.DB) error {
	if m.downFunc != nil {
		return m.downFunc(db)
	}
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func setupRunner(t *testing.T) (*Runner, *Registry, *Tracker, *gorm.DB) {
	db := setupTestDB(t)
	registry := NewRegistry()
	tracker := NewTracker(db, testTable)
	if err := tracker.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return NewRunner(db, registry, tracker, nil), registry, tracker, db
}

func tableExists(db *gorm.DB, name string) bool {
	return db.Migrator().HasTable(name)
}

func TestRegistryAllSorted(t *testing.T) {
	registry := NewRegistry()
	for _, m := range []Migration{
		testMigration{version: "0003", name: "third"},
		testMigration{version: "0001", name: "first"},
		testMigration{version: "0002", name: "second"},
	} {
		registry.Register(m)
	}

	all := registry.All()
	if len(all) != 3 {
		t.Fatalf("Expected 3 migrations, got %d", len(all))
	}
	if all[0].Version() != "0001" || all[2].Version() != "0003" {
		t.Errorf("Migrations not sorted: %s..%s", all[0].Version(), all[2].Version())
	}

	if _, ok := registry.Get("0002"); !ok {
		t.Error("Migration 0002 should be registered")
	}
	if _, ok := registry.Get("0004"); ok {
		t.Error("Migration 0004 should not be registered")
	}
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	run, registry, tracker, db := setupRunner(t)

	registry.Register(testMigration{
		version: "0001",
		name:    "create_widgets",
		upFunc: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE widgets (id INTEGER)").Error
		},
	})

	n, err := run.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 applied migration, got %d", n)
	}
	if !tableExists(db, "widgets") {
		t.Error("widgets table should exist")
	}

	applied, err := tracker.IsApplied(ctx, "0001")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if !applied {
		t.Error("Migration should be marked as applied")
	}

	// second run is a no-op
	n, err = run.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected no migrations on second run, got %d", n)
	}
}

func TestMigrateStopsOnFailure(t *testing.T) {
	ctx := context.Background()
	run, registry, tracker, _ := setupRunner(t)

	registry.Register(testMigration{version: "0001", name: "ok"})
	registry.Register(testMigration{
		version: "0002",
		name:    "broken",
		upFunc:  func(*gorm.DB) error { return errors.New("boom") },
	})
	registry.Register(testMigration{version: "0003", name: "never"})

	n, err := run.Migrate(ctx)
	if err == nil {
		t.Fatal("Migrate should fail")
	}
	if n != 1 {
		t.Errorf("Expected 1 migration applied before failure, got %d", n)
	}

	versions, err := tracker.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions failed: %v", err)
	}
	if len(versions) != 1 || versions[0] != "0001" {
		t.Errorf("Expected only 0001 applied, got %v", versions)
	}
}

func TestPendingAndApplied(t *testing.T) {
	ctx := context.Background()
	run, registry, _, _ := setupRunner(t)

	registry.Register(testMigration{version: "0001", name: "first"})
	if _, err := run.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	registry.Register(testMigration{version: "0002", name: "second"})

	pending, err := run.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Version() != "0002" {
		t.Errorf("Expected 0002 pending, got %v", pending)
	}

	applied, err := run.Applied(ctx)
	if err != nil {
		t.Fatalf("Applied failed: %v", err)
	}
	if len(applied) != 1 || applied[0].Version() != "0001" {
		t.Errorf("Expected 0001 applied, got %v", applied)
	}
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	run, registry, tracker, db := setupRunner(t)

	registry.Register(testMigration{
		version: "0001",
		name:    "first",
		upFunc:  func(db *gorm.DB) error { return db.Exec("CREATE TABLE alpha (id INTEGER)").Error },
		downFunc: func(db *gorm.DB) error {
			return db.Migrator().DropTable("alpha")
		},
	})
	registry.Register(testMigration{
		version: "0002",
		name:    "second",
		upFunc:  func(db *gorm.DB) error { return db.Exec("CREATE TABLE beta (id INTEGER)").Error },
		downFunc: func(db *gorm.DB) error {
			return db.Migrator().DropTable("beta")
		},
	})

	if _, err := run.Migrate(ctx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	n, err := run.Rollback(ctx, 1)
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 rolled back, got %d", n)
	}

	// Check that last migration was removed
	applied, err := tracker.IsApplied(ctx, "0002")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if applied {
		t.Error("Rolled back migration should not be applied")
	}
	if tableExists(db, "beta") {
		t.Error("beta table should be dropped")
	}

	// First migration should still be applied
	applied, err = tracker.IsApplied(ctx, "0001")
	if err != nil {
		t.Fatalf("IsApplied failed: %v", err)
	}
	if !applied {
		t.Error("First migration should still be applied")
	}

	// asking for more than applied reverts what is left
	n, err = run.Rollback(ctx, 5)
	if err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 rolled back, got %d", n)
	}

	if _, err := run.Rollback(ctx, 1); err == nil {
		t.Error("Rollback with nothing applied should error")
	}
}
