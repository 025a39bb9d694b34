package migrate

import (
	"sort"

	"gorm.io/gorm"
)

// Migration is a versioned schema change
type Migration interface {
	Version() string
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Registry holds migrations keyed by version
type Registry struct {
	migrations map[string]Migration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		migrations: make(map[string]Migration),
	}
}

// Register adds m, replacing any migration with the same version
func (r *Registry) Register(m Migration) {
	r.migrations[m.Version()] = m
}

// Get returns a migration by version
func (r *Registry) Get(version string) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// All returns every migration sorted by version
func (r *Registry) All() []Migration {
	all := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Version() < all[j].Version()
	})
	return all
}
