package product

import (
	"context"

	"github.com/pankajredekar/productapi/internal/database"
	"github.com/pkg/errors"
)

const (
	sqlList       = `SELECT id, name, price FROM products`
	sqlGetByID    = `SELECT id, name, price FROM products WHERE id = @id`
	sqlInsert     = `INSERT INTO products (name, price) VALUES (@name, @price)`
	sqlReturnID   = ` RETURNING id`
	sqlLastInsert = `SELECT LAST_INSERT_ID()`
	sqlUpdate     = `UPDATE products SET name = @name, price = @price WHERE id = @id`
	sqlDelete     = `DELETE FROM products WHERE id = @id`
)

// Repository runs one SQL statement per call against a connection it opens
// and closes itself. It is the Service implementation.
type Repository struct {
	connector database.Connector
}

var _ Service = (*Repository)(nil)

func NewRepository(connector database.Connector) *Repository {
	return &Repository{connector: connector}
}

// List returns every product; an empty table yields an empty, non-nil slice.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	conn, err := r.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	products := make([]Product, 0)
	if err := conn.Raw(sqlList).Scan(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// GetByID returns nil, nil when the id does not exist.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	conn, err := r.connector.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []Product
	if err := conn.Raw(sqlGetByID, map[string]interface{}{"id": id}).Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Create inserts p, ignoring p.ID, and returns the id the store assigned.
func (r *Repository) Create(ctx context.Context, p Product) (int64, error) {
	conn, err := r.connector.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	args := map[string]interface{}{"name": p.Name, "price": p.Price}

	var id int64
	if conn.Dialect() == database.DialectMySQL {
		// the connection is not shared, so LAST_INSERT_ID sees this insert
		if err := conn.Exec(sqlInsert, args).Error; err != nil {
			return 0, errors.Wrap(err, "create product")
		}
		if err := conn.Raw(sqlLastInsert).Scan(&id).Error; err != nil {
			return 0, errors.Wrap(err, "read generated product id")
		}
		return id, nil
	}

	if err := conn.Raw(sqlInsert+sqlReturnID, args).Scan(&id).Error; err != nil {
		return 0, errors.Wrap(err, "create product")
	}
	return id, nil
}

// Update overwrites name and price of the row with p.ID.
// It reports false when no row was affected.
func (r *Repository) Update(ctx context.Context, p Product) (bool, error) {
	conn, err := r.connector.Open(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res := conn.Exec(sqlUpdate, map[string]interface{}{"id": p.ID, "name": p.Name, "price": p.Price})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "update product %d", p.ID)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the row with id. It reports false when no row was affected.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	conn, err := r.connector.Open(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res := conn.Exec(sqlDelete, map[string]interface{}{"id": id})
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "delete product %d", id)
	}
	return res.RowsAffected > 0, nil
}
