package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type orderRepositorySuite struct {
	suite.Suite

	orders  port.OrderRepository
	catalog port.CatalogRepository
	carts   port.CartRepository
	uow     port.UnitOfWork
	pool    *pgxpool.Pool
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.orders, err = repository.NewOrder(suite.pool)
	suite.Require().NoError(err)

	suite.catalog, err = repository.NewCatalog(suite.pool)
	suite.Require().NoError(err)

	suite.carts, err = repository.NewCart(suite.pool)
	suite.Require().NoError(err)

	suite.uow, err = repository.NewUnitOfWork(suite.pool, 0)
	suite.Require().NoError(err)
}

func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *orderRepositorySuite) TestCreateOrder() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	a, err := suite.catalog.CreateProduct(ctx, randomProduct(5))
	require.NoError(t, err)
	b, err := suite.catalog.CreateProduct(ctx, randomProduct(5))
	require.NoError(t, err)

	lines := []domain.OrderLine{
		{ProductID: a.ID, Quantity: 2, UnitPrice: a.Price},
		{ProductID: b.ID, Quantity: 1, UnitPrice: b.Price},
	}

	created, err := suite.orders.CreateOrder(ctx, ownerID, lines)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	wantTotal := a.Price.Amount.Mul(decimal.NewFromInt(2)).Add(b.Price.Amount)
	assert.True(t, wantTotal.Equal(created.Total.Amount), "total %s", created.Total)

	fetched, err := suite.orders.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assertOrder(t, created, fetched)

	listed, err := suite.orders.ListOrders(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assertOrder(t, created, listed[0])
}

func (suite *orderRepositorySuite) TestCreateOrderInvalid() {
	tests := []struct {
		name      string
		ownerID   string
		lines     []domain.OrderLine
		wantError string
	}{
		{
			name:      "empty owner ID: error",
			ownerID:   "",
			lines:     []domain.OrderLine{{ProductID: uuid.New(), Quantity: 1, UnitPrice: randomMoney()}},
			wantError: "domain.NewOrder: ownerID is empty",
		},
		{
			name:      "no lines: error",
			ownerID:   gofakeit.UUID(),
			wantError: "domain.NewOrder: SumLines: order has no lines",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.orders.CreateOrder(suite.T().Context(), tt.ownerID, tt.lines)
			require.EqualError(suite.T(), err, tt.wantError)
		})
	}
}

func (suite *orderRepositorySuite) TestGetOrderNotFound() {
	_, err := suite.orders.GetOrder(suite.T().Context(), uuid.New())
	suite.Require().ErrorIs(err, port.ErrNotFound)
}

func (suite *orderRepositorySuite) TestUnitOfWorkRollsBack() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	product, err := suite.catalog.CreateProduct(ctx, randomProduct(3))
	require.NoError(t, err)
	_, err = suite.carts.AddItem(ctx, ownerID, product.ID, 2)
	require.NoError(t, err)

	errBoom := errors.New("boom")

	err = suite.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		ok, err := repos.Catalog.TryReserve(ctx, product.ID, 2)
		require.NoError(t, err)
		require.True(t, ok)

		_, err = repos.Orders.CreateOrder(ctx, ownerID, []domain.OrderLine{
			{ProductID: product.ID, Quantity: 2, UnitPrice: product.Price},
		})
		require.NoError(t, err)

		_, err = repos.Cart.Clear(ctx, ownerID)
		require.NoError(t, err)

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	stock, _, err := suite.catalog.GetStockAndPrice(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stock)

	orders, err := suite.orders.ListOrders(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	cart, err := suite.carts.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func (suite *orderRepositorySuite) TestUnitOfWorkLockTimeoutIsConflict() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product, err := suite.catalog.CreateProduct(ctx, randomProduct(3))
	require.NoError(t, err)

	holder, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()

	_, err = repository.NewCatalogWithTx(holder).LockProducts(ctx, []uuid.UUID{product.ID})
	require.NoError(t, err)

	uow, err := repository.NewUnitOfWork(suite.pool, 50*time.Millisecond)
	require.NoError(t, err)

	err = uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		_, err := repos.Catalog.LockProducts(ctx, []uuid.UUID{product.ID})
		return err
	})
	require.ErrorIs(t, err, port.ErrConflict)

	require.NoError(t, holder.Rollback(ctx))

	stock, _, err := suite.catalog.GetStockAndPrice(ctx, product.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stock)
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE order_lines, orders, cart_items, products CASCADE")
	suite.NoError(err)
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		productCmpOpts(),
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt"),
		cmpopts.SortSlices(func(x, y domain.OrderLine) bool { return x.ProductID.String() < y.ProductID.String() }),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.WithinDuration(t, expected.CreatedAt, actual.CreatedAt, time.Millisecond)
}
