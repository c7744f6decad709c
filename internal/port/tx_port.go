package port

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a transient failure caused by a concurrent writer; the unit of work may be retried.
	ErrConflict = errors.New("concurrent update conflict")
)

// Repositories are bound to a single transaction.
type Repositories struct {
	Cart    CartRepository
	Catalog CatalogRepository
	Orders  OrderRepository
}

type UnitOfWork interface {
	// Do runs fn in one transaction. The transaction commits if fn returns nil and rolls back otherwise.
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
