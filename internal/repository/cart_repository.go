package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{
		q: db.New(pool),
	}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q: db.New(tx),
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCartItems, err := r.q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, wrapErr("q.GetCart", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   mapCartItemsToDomain(dbCartItems),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (domain.CartItem, error) {
	if ownerID == "" {
		return domain.CartItem{}, fmt.Errorf("ownerID is empty")
	}
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	row, err := r.q.AddItem(ctx, db.AddItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return domain.CartItem{}, wrapErr("q.AddItem", err)
	}

	return mapCartItemToDomain(row), nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}
	if quantity <= 0 {
		return false, fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	rowsAffected, err := r.q.SetItemQuantity(ctx, db.SetItemQuantityParams{
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return false, wrapErr("q.SetItemQuantity", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteItem(ctx, db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return false, wrapErr("q.DeleteItem", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) Snapshot(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCartItems, err := r.q.SnapshotCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, wrapErr("q.SnapshotCart", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   mapCartItemsToDomain(dbCartItems),
	}, nil
}

func (r *cartRepository) DeleteItems(ctx context.Context, ownerID string, productIDs []uuid.UUID) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}
	if len(productIDs) == 0 {
		return 0, nil
	}

	rowsAffected, err := r.q.DeleteItems(ctx, db.DeleteItemsParams{
		OwnerID:    ownerID,
		ProductIds: productIDs,
	})
	if err != nil {
		return 0, wrapErr("q.DeleteItems", err)
	}

	return rowsAffected, nil
}

func (r *cartRepository) Clear(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.ClearCart(ctx, ownerID)
	if err != nil {
		return 0, wrapErr("q.ClearCart", err)
	}

	return rowsAffected, nil
}

func mapCartItemToDomain(row db.CartItem) domain.CartItem {
	return domain.CartItem{
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapCartItemsToDomain(rows []db.CartItem) []domain.CartItem {
	var items []domain.CartItem

	for _, row := range rows {
		items = append(items, mapCartItemToDomain(row))
	}

	return items
}
