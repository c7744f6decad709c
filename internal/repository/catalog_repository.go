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
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type catalogRepository struct {
	q *db.Queries
}

func NewCatalog(pool *pgxpool.Pool) (port.CatalogRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &catalogRepository{
		q: db.New(pool),
	}, nil
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{
		q: db.New(tx),
	}
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.StockCount < 0 {
		return domain.Product{}, fmt.Errorf("stockCount[%d] is negative", product.StockCount)
	}
	if product.Price.Amount.IsNegative() {
		return domain.Product{}, fmt.Errorf("price[%s] is negative", product.Price)
	}

	price := product.Price.Normalize()

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		ImageUrl:      product.ImageURL,
		PriceAmount:   price.Amount,
		PriceCurrency: price.Currency.String(),
		StockCount:    product.StockCount,
	})
	if err != nil {
		return domain.Product{}, wrapErr("q.CreateProduct", err)
	}

	created, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return created, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, wrapErr("q.GetProduct", err)
	}

	product, err := mapProductToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, wrapErr("q.ListProducts", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *catalogRepository) UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) error {
	if price.Amount.IsNegative() {
		return fmt.Errorf("price[%s] is negative", price)
	}

	price = price.Normalize()

	rowsAffected, err := r.q.UpdateProductPrice(ctx, db.UpdateProductPriceParams{
		ID:            productID,
		PriceAmount:   price.Amount,
		PriceCurrency: price.Currency.String(),
	})
	if err != nil {
		return wrapErr("q.UpdateProductPrice", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product[%s]: %w", productID, port.ErrNotFound)
	}

	return nil
}

func (r *catalogRepository) GetStockAndPrice(ctx context.Context, productID uuid.UUID) (int64, domain.Money, error) {
	row, err := r.q.GetStockAndPrice(ctx, productID)
	if err != nil {
		return 0, domain.Money{}, wrapErr("q.GetStockAndPrice", err)
	}

	price, err := mapMoneyToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return 0, domain.Money{}, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return row.StockCount, price, nil
}

func (r *catalogRepository) LockProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	result := make(map[uuid.UUID]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	rows, err := r.q.LockProducts(ctx, productIDs)
	if err != nil {
		return nil, wrapErr("q.LockProducts", err)
	}

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		result[product.ID] = product
	}

	return result, nil
}

func (r *catalogRepository) TryReserve(ctx context.Context, productID uuid.UUID, quantity int64) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	rowsAffected, err := r.q.TryReserve(ctx, db.TryReserveParams{
		Quantity: quantity,
		ID:       productID,
	})
	if err != nil {
		return false, wrapErr("q.TryReserve", err)
	}

	return rowsAffected == 1, nil
}

func mapMoneyToDomain(amount decimal.Decimal, code string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	price, err := mapMoneyToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapMoneyToDomain: %w", err)
	}

	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		ImageURL:    row.ImageUrl,
		Price:       price,
		StockCount:  row.StockCount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
