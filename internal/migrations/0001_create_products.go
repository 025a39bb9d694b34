package migrations

import (
	"fmt"

	"github.com/pankajredekar/productapi"
	"gorm.io/gorm"
)

type CreateProducts struct{}

func (m CreateProducts) Version() string { return "0001" }

func (m CreateProducts) Name() string { return "create_products" }

func (m CreateProducts) Up(db *gorm.DB) error {
	var ddl string
	switch db.Dialector.Name() {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DOUBLE PRECISION NOT NULL
		)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DOUBLE NOT NULL
		)`
	case "sqlite":
		ddl = `CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL,
			price REAL NOT NULL
		)`
	default:
		return fmt.Errorf("create_products: unsupported dialect %q", db.Dialector.Name())
	}
	return db.Exec(ddl).Error
}

func (m CreateProducts) Down(db *gorm.DB) error {
	return db.Exec("DROP TABLE IF EXISTS products").Error
}

func init() {
	productapi.RegisterMigration(CreateProducts{})
}
