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

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// CreateOrder writes the order header and its lines in one transaction. The stored
// total is the exact sum of the lines.
func (r *orderRepository) CreateOrder(ctx context.Context, ownerID string, lines []domain.OrderLine) (domain.Order, error) {
	order, err := domain.NewOrder(ownerID, lines)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewOrder: %w", err)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		row, err := q.CreateOrder(ctx, db.CreateOrderParams{
			OwnerID:       order.OwnerID,
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
		})
		if err != nil {
			return domain.Order{}, wrapErr("q.CreateOrder", err)
		}

		for _, line := range order.Lines {
			err := q.CreateOrderLine(ctx, db.CreateOrderLineParams{
				OrderID:           row.ID,
				ProductID:         line.ProductID,
				Quantity:          line.Quantity,
				UnitPriceAmount:   line.UnitPrice.Amount,
				UnitPriceCurrency: line.UnitPrice.Currency.String(),
			})
			if err != nil {
				return domain.Order{}, wrapErr("q.CreateOrderLine", err)
			}
		}

		order.ID = row.ID
		order.CreatedAt = row.CreatedAt

		return order, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, wrapErr("q.GetOrder", err)
	}

	orders, err := r.attachLines(ctx, []db.Order{row})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.attachLines: %w", err)
	}

	return orders[0], nil
}

func (r *orderRepository) ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.q.ListOrdersByOwner(ctx, ownerID)
	if err != nil {
		return nil, wrapErr("q.ListOrdersByOwner", err)
	}

	orders, err := r.attachLines(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.attachLines: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) attachLines(ctx context.Context, rows []db.Order) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	lineRows, err := r.q.ListOrderLines(ctx, ids)
	if err != nil {
		return nil, wrapErr("q.ListOrderLines", err)
	}

	linesByOrder := make(map[uuid.UUID][]domain.OrderLine, len(rows))
	for _, lineRow := range lineRows {
		unitPrice, err := mapMoneyToDomain(lineRow.UnitPriceAmount, lineRow.UnitPriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapMoneyToDomain: %w", err)
		}

		linesByOrder[lineRow.OrderID] = append(linesByOrder[lineRow.OrderID], domain.OrderLine{
			ProductID: lineRow.ProductID,
			Quantity:  lineRow.Quantity,
			UnitPrice: unitPrice,
		})
	}

	for _, row := range rows {
		total, err := mapMoneyToDomain(row.TotalAmount, row.TotalCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapMoneyToDomain: %w", err)
		}

		orders = append(orders, domain.Order{
			ID:        row.ID,
			OwnerID:   row.OwnerID,
			Total:     total,
			Lines:     linesByOrder[row.ID],
			CreatedAt: row.CreatedAt,
		})
	}

	return orders, nil
}
