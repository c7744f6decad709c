package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sethvargo/go-retry"
	"golang.org/x/text/currency"
)

const outcomeCommitted = "committed"

type Config struct {
	// MaxAttempts bounds how many transactions one checkout may run, the first included.
	MaxAttempts int
	Timeout     time.Duration
	BaseBackoff time.Duration
	// Currency is the store currency. Products priced in anything else cannot be bought.
	Currency currency.Unit
}

type Option func(*Engine)

func WithLogger(logg *logger.Logger) Option {
	return func(e *Engine) {
		if logg != nil {
			e.logg = logg
		}
	}
}

func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine turns a principal's cart into an order. Stock is decremented, prices are
// snapshotted, the order is written and the cart lines are removed in one unit of work.
type Engine struct {
	uow     port.UnitOfWork
	cfg     Config
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

func New(uow port.UnitOfWork, cfg Config, opts ...Option) (*Engine, error) {
	if uow == nil {
		return nil, fmt.Errorf("uow is nil")
	}
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("maxAttempts[%d] is not positive", cfg.MaxAttempts)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout[%s] is not positive", cfg.Timeout)
	}
	if cfg.BaseBackoff <= 0 {
		return nil, fmt.Errorf("baseBackoff[%s] is not positive", cfg.BaseBackoff)
	}
	if cfg.Currency == (currency.Unit{}) {
		cfg.Currency = currency.USD
	}

	e := &Engine{
		uow:  uow,
		cfg:  cfg,
		logg: logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Checkout commits the principal's cart. On any error persisted state is unchanged.
func (e *Engine) Checkout(ctx context.Context, ownerID string) (domain.Order, error) {
	if ownerID == "" {
		return domain.Order{}, apperr.New(apperr.CodeValidation, "principal id is empty")
	}

	start := time.Now()
	ctx = e.logg.WithOwnerID(ctx, ownerID)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	var (
		order   domain.Order
		attempt int
	)

	backoff := retry.WithMaxRetries(uint64(e.cfg.MaxAttempts-1), retry.NewExponential(e.cfg.BaseBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		e.metrics.IncAttempt()

		placed, err := e.attempt(ctx, ownerID)
		if err == nil {
			order = placed
			return nil
		}

		if errors.Is(err, port.ErrConflict) && ctx.Err() == nil {
			if attempt < e.cfg.MaxAttempts {
				e.logg.Warn(e.logg.WithFields(ctx, map[string]any{
					"attempt": attempt,
					"reason":  err.Error(),
				}), "checkout.retry")
			}
			return retry.RetryableError(err)
		}

		return err
	})

	err = classify(ctx, err)
	elapsed := time.Since(start)

	if err != nil {
		code := apperr.CodeOf(err)
		e.metrics.ObserveOutcome(string(code), elapsed)

		fields := map[string]any{
			"code":     string(code),
			"attempts": attempt,
		}
		if productID, ok := RejectedProduct(err); ok {
			fields["product_id"] = productID.String()
		}
		logCtx := e.logg.WithFields(ctx, fields)

		if code == apperr.CodeInternal {
			e.logg.Error(logCtx, "checkout.failed", err)
		} else {
			e.logg.Warn(logCtx, "checkout.rejected")
		}

		return domain.Order{}, err
	}

	e.metrics.ObserveOutcome(outcomeCommitted, elapsed)
	e.logg.Info(e.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"total":    order.Total.String(),
		"lines":    len(order.Lines),
		"attempts": attempt,
	}), "checkout.committed")

	return order, nil
}

// attempt runs a single transaction. Cart lines and product rows are locked before
// anything is validated, so validation and mutation see the same state.
func (e *Engine) attempt(ctx context.Context, ownerID string) (domain.Order, error) {
	var order domain.Order

	err := e.uow.Do(ctx, func(ctx context.Context, repos port.Repositories) error {
		cart, err := repos.Cart.Snapshot(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("repos.Cart.Snapshot: %w", err)
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		items := cart.Sorted()
		productIDs := cart.ProductIDs()

		products, err := repos.Catalog.LockProducts(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("repos.Catalog.LockProducts: %w", err)
		}

		lines, err := e.buildLines(items, products)
		if err != nil {
			return err
		}

		for _, line := range lines {
			ok, err := repos.Catalog.TryReserve(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("repos.Catalog.TryReserve: %w", err)
			}
			e.metrics.IncReservation(ok)
			if !ok {
				return fmt.Errorf("product[%s] reservation rejected: %w", line.ProductID, port.ErrConflict)
			}
		}

		order, err = repos.Orders.CreateOrder(ctx, ownerID, lines)
		if err != nil {
			return fmt.Errorf("repos.Orders.CreateOrder: %w", err)
		}

		if _, err := repos.Cart.DeleteItems(ctx, ownerID, productIDs); err != nil {
			return fmt.Errorf("repos.Cart.DeleteItems: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// buildLines validates every cart line against the locked products before any stock moves.
// Lines are checked in product id order and the first failing line is reported.
func (e *Engine) buildLines(items []domain.CartItem, products map[uuid.UUID]domain.Product) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(items))

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound.WithDetails(LineDetails{
				ProductID: item.ProductID,
				Requested: item.Quantity,
			})
		}

		if product.Price.Currency != e.cfg.Currency {
			return nil, apperr.New(apperr.CodeValidation,
				fmt.Sprintf("product is priced in %s, store currency is %s", product.Price.Currency, e.cfg.Currency)).
				WithDetails(LineDetails{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: product.StockCount,
				})
		}

		if !product.HasStock(item.Quantity) {
			return nil, ErrInsufficientStock.WithDetails(LineDetails{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: product.StockCount,
			})
		}

		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price.Normalize(),
		})
	}

	return lines, nil
}

func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if typed := apperr.As(err); typed != nil {
		return typed
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperr.Wrap(apperr.CodeCheckoutTimeout, err, ErrCheckoutTimeout.Message())
	case errors.Is(err, context.Canceled):
		return apperr.Wrap(apperr.CodeCheckoutTimeout, err, "checkout was cancelled")
	case errors.Is(err, port.ErrConflict):
		return apperr.Wrap(apperr.CodeCheckoutConflict, err, ErrCheckoutConflict.Message())
	}

	return apperr.Wrap(apperr.CodeInternal, err, "checkout failed")
}
