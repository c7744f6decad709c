package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// OrderRepository is append-only: orders are never updated after creation.
type OrderRepository interface {
	CreateOrder(ctx context.Context, ownerID string, lines []domain.OrderLine) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
}
