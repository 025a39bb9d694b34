package productapi

import (
	"github.com/pankajredekar/productapi/internal/migrate"
	"github.com/pankajredekar/productapi/internal/product"
)

// Product is the single resource served by the API
type Product = product.Product

// Migration interface that all schema migrations must implement
type Migration = migrate.Migration

var globalRegistry = migrate.NewRegistry()

// RegisterMigration registers a migration in the global registry
func RegisterMigration(m Migration) {
	globalRegistry.Register(m)
}

// GetGlobalRegistry returns the global registry
func GetGlobalRegistry() *migrate.Registry {
	return globalRegistry
}

// SetGlobalRegistry sets the global registry (for testing)
func SetGlobalRegistry(reg *migrate.Registry) {
	globalRegistry = reg
}
