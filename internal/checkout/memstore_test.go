package checkout_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// memState is the whole store. A unit of work mutates a copy and swaps it in on commit.
type memState struct {
	products map[uuid.UUID]domain.Product
	carts    map[string]map[uuid.UUID]domain.CartItem
	orders   []domain.Order
}

func (s memState) clone() memState {
	carts := make(map[string]map[uuid.UUID]domain.CartItem, len(s.carts))
	for owner, items := range s.carts {
		carts[owner] = maps.Clone(items)
	}

	return memState{
		products: maps.Clone(s.products),
		carts:    carts,
		orders:   slices.Clone(s.orders),
	}
}

// memStore serializes units of work with a mutex, the in-memory stand-in for row locks.
type memStore struct {
	mu    sync.Mutex
	state memState
	calls int

	// conflicts makes the next N commits fail as if a concurrent writer won.
	conflicts int
	// beforeCommit runs after fn succeeded; a non-nil error rolls back.
	beforeCommit func(ctx context.Context) error
}

var _ port.UnitOfWork = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			products: map[uuid.UUID]domain.Product{},
			carts:    map[string]map[uuid.UUID]domain.CartItem{},
		},
	}
}

func (m *memStore) Do(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	tx := m.state.clone()
	repos := port.Repositories{
		Cart:    &memCart{s: &tx},
		Catalog: &memCatalog{s: &tx},
		Orders:  &memOrders{s: &tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if m.beforeCommit != nil {
		if err := m.beforeCommit(ctx); err != nil {
			return err
		}
	}

	if m.conflicts > 0 {
		m.conflicts--
		return fmt.Errorf("tx.Commit: %w", port.ErrConflict)
	}

	m.state = tx
	return nil
}

func (m *memStore) addProduct(price domain.Money, stock int64) domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()

	product := domain.Product{
		ID:         uuid.New(),
		Name:       "product",
		Price:      price.Normalize(),
		StockCount: stock,
	}
	m.state.products[product.ID] = product
	return product
}

func (m *memStore) addToCart(ownerID string, productID uuid.UUID, quantity int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _ = (&memCart{s: &m.state}).AddItem(context.Background(), ownerID, productID, quantity)
}

func (m *memStore) setPrice(productID uuid.UUID, price domain.Money) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = (&memCatalog{s: &m.state}).UpdatePrice(context.Background(), productID, price)
}

func (m *memStore) stock(productID uuid.UUID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state.products[productID].StockCount
}

func (m *memStore) cartSize(ownerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.state.carts[ownerID])
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.state.orders)
}

func (m *memStore) commitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

type memCart struct {
	s *memState
}

func (c *memCart) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	cart := domain.Cart{OwnerID: ownerID}
	for _, item := range c.s.carts[ownerID] {
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}

func (c *memCart) AddItem(_ context.Context, ownerID string, productID uuid.UUID, quantity int64) (domain.CartItem, error) {
	if c.s.carts[ownerID] == nil {
		c.s.carts[ownerID] = map[uuid.UUID]domain.CartItem{}
	}

	item, ok := c.s.carts[ownerID][productID]
	if !ok {
		item = domain.CartItem{ProductID: productID, CreatedAt: time.Now()}
	}
	item.Quantity += quantity
	item.UpdatedAt = time.Now()

	c.s.carts[ownerID][productID] = item
	return item, nil
}

func (c *memCart) SetQuantity(_ context.Context, ownerID string, productID uuid.UUID, quantity int64) (bool, error) {
	item, ok := c.s.carts[ownerID][productID]
	if !ok {
		return false, nil
	}
	item.Quantity = quantity
	c.s.carts[ownerID][productID] = item
	return true, nil
}

func (c *memCart) DeleteItem(_ context.Context, ownerID string, productID uuid.UUID) (bool, error) {
	if _, ok := c.s.carts[ownerID][productID]; !ok {
		return false, nil
	}
	delete(c.s.carts[ownerID], productID)
	return true, nil
}

func (c *memCart) Snapshot(ctx context.Context, ownerID string) (domain.Cart, error) {
	return c.GetCart(ctx, ownerID)
}

func (c *memCart) DeleteItems(_ context.Context, ownerID string, productIDs []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range productIDs {
		if _, ok := c.s.carts[ownerID][id]; ok {
			delete(c.s.carts[ownerID], id)
			deleted++
		}
	}
	return deleted, nil
}

func (c *memCart) Clear(_ context.Context, ownerID string) (int64, error) {
	deleted := int64(len(c.s.carts[ownerID]))
	delete(c.s.carts, ownerID)
	return deleted, nil
}

type memCatalog struct {
	s *memState
}

func (c *memCatalog) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	product.ID = uuid.New()
	c.s.products[product.ID] = product
	return product, nil
}

func (c *memCatalog) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	product, ok := c.s.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, port.ErrNotFound)
	}
	return product, nil
}

func (c *memCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	return slices.Collect(maps.Values(c.s.products)), nil
}

func (c *memCatalog) UpdatePrice(_ context.Context, productID uuid.UUID, price domain.Money) error {
	product, ok := c.s.products[productID]
	if !ok {
		return fmt.Errorf("product[%s]: %w", productID, port.ErrNotFound)
	}
	product.Price = price.Normalize()
	c.s.products[productID] = product
	return nil
}

func (c *memCatalog) GetStockAndPrice(ctx context.Context, productID uuid.UUID) (int64, domain.Money, error) {
	product, err := c.GetProduct(ctx, productID)
	if err != nil {
		return 0, domain.Money{}, err
	}
	return product.StockCount, product.Price, nil
}

func (c *memCatalog) LockProducts(_ context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	result := make(map[uuid.UUID]domain.Product, len(productIDs))
	for _, id := range productIDs {
		if product, ok := c.s.products[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

func (c *memCatalog) TryReserve(_ context.Context, productID uuid.UUID, quantity int64) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("quantity[%d] is not positive", quantity)
	}

	product, ok := c.s.products[productID]
	if !ok || product.StockCount < quantity {
		return false, nil
	}
	product.StockCount -= quantity
	c.s.products[productID] = product
	return true, nil
}

type memOrders struct {
	s *memState
}

func (o *memOrders) CreateOrder(_ context.Context, ownerID string, lines []domain.OrderLine) (domain.Order, error) {
	order, err := domain.NewOrder(ownerID, lines)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.NewOrder: %w", err)
	}
	order.ID = uuid.New()
	order.CreatedAt = time.Now()

	o.s.orders = append(o.s.orders, order)
	return order, nil
}

func (o *memOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	for _, order := range o.s.orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, port.ErrNotFound)
}

func (o *memOrders) ListOrders(_ context.Context, ownerID string) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range o.s.orders {
		if order.OwnerID == ownerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}
