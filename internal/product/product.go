package product

import "context"

// Product is a row of the products table. ID is assigned by the store on insert.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Service is what the HTTP layer needs from the product store.
// GetByID returns nil with a nil error when no row matches; Update and Delete
// report whether a row was affected.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (int64, error)
	Update(ctx context.Context, p Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
