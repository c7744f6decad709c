package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// AddItem adds quantity to the owner's line for the product, creating it if absent.
	AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (domain.CartItem, error)
	SetQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (bool, error)
	DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error)

	// Snapshot reads the owner's cart and locks its lines until the surrounding transaction ends.
	Snapshot(ctx context.Context, ownerID string) (domain.Cart, error)
	// DeleteItems removes only the listed lines. Lines already gone are ignored.
	DeleteItems(ctx context.Context, ownerID string, productIDs []uuid.UUID) (int64, error)
	Clear(ctx context.Context, ownerID string) (int64, error)
}
