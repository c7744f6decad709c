package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CatalogRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error

	// GetStockAndPrice is an unlocked read; the values may be stale by the time they are used.
	GetStockAndPrice(ctx context.Context, productID uuid.UUID) (int64, domain.Money, error)

	// LockProducts reads the products and holds row locks on them until the surrounding
	// transaction ends. Locks are taken in product id order. Missing ids are absent from the result.
	LockProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error)

	// TryReserve decrements stock by quantity only if at least quantity units are available.
	// It reports false and leaves stock untouched otherwise.
	TryReserve(ctx context.Context, productID uuid.UUID, quantity int64) (bool, error)
}
