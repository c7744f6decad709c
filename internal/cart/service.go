package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

// StockDetails is attached to INSUFFICIENT_STOCK errors raised while editing a cart.
type StockDetails struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
}

// View is a display copy of a cart priced at current catalogue prices.
// It is not used for billing; checkout reprices under lock.
type View struct {
	OwnerID string
	Lines   []ViewLine
	Total   domain.Money
}

type ViewLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int64
	UnitPrice domain.Money
	LineTotal domain.Money
	// Available is false when the product left the catalogue or is priced in another currency.
	Available bool
}

type Service struct {
	carts    port.CartRepository
	catalog  port.CatalogRepository
	currency currency.Unit
	logg     *logger.Logger
}

func NewService(carts port.CartRepository, catalog port.CatalogRepository, cur currency.Unit, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	return &Service{
		carts:    carts,
		catalog:  catalog,
		currency: cur,
		logg:     logg,
	}, nil
}

// AddItem merges quantity into the owner's line for the product. The stock check is
// advisory; checkout validates again under lock.
func (s *Service) AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (domain.CartItem, error) {
	if err := validateOwner(ownerID); err != nil {
		return domain.CartItem{}, err
	}
	if quantity < 1 {
		return domain.CartItem{}, apperr.New(apperr.CodeValidation, fmt.Sprintf("quantity[%d] must be at least 1", quantity))
	}

	stock, err := s.stockOf(ctx, productID)
	if err != nil {
		return domain.CartItem{}, err
	}

	if quantity > stock {
		return domain.CartItem{}, insufficientStock(productID, quantity, stock)
	}

	current, err := s.carts.GetCart(ctx, ownerID)
	if err != nil {
		return domain.CartItem{}, apperr.Wrap(apperr.CodeInternal, err, "reading cart failed")
	}

	// quantity <= stock here, so stock-quantity cannot overflow
	for _, item := range current.Items {
		if item.ProductID == productID && item.Quantity > stock-quantity {
			return domain.CartItem{}, insufficientStock(productID, item.Quantity+quantity, stock)
		}
	}

	item, err := s.carts.AddItem(ctx, ownerID, productID, quantity)
	if err != nil {
		return domain.CartItem{}, apperr.Wrap(apperr.CodeInternal, err, "adding cart item failed")
	}

	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"product_id": productID.String(),
		"quantity":   item.Quantity,
	}), "cart.item_added")

	return item, nil
}

// UpdateQuantity sets the line quantity. A quantity of zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, ownerID, productID)
	}

	stock, err := s.stockOf(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > stock {
		return insufficientStock(productID, quantity, stock)
	}

	updated, err := s.carts.SetQuantity(ctx, ownerID, productID, quantity)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "updating cart item failed")
	}
	if !updated {
		return apperr.New(apperr.CodeNotFound, "item not in cart")
	}

	return nil
}

func (s *Service) RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}

	deleted, err := s.carts.DeleteItem(ctx, ownerID, productID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "removing cart item failed")
	}
	if !deleted {
		return apperr.New(apperr.CodeNotFound, "item not in cart")
	}

	return nil
}

func (s *Service) View(ctx context.Context, ownerID string) (View, error) {
	if err := validateOwner(ownerID); err != nil {
		return View{}, err
	}

	current, err := s.carts.GetCart(ctx, ownerID)
	if err != nil {
		return View{}, apperr.Wrap(apperr.CodeInternal, err, "reading cart failed")
	}

	view := View{
		OwnerID: ownerID,
		Lines:   make([]ViewLine, 0, len(current.Items)),
		Total:   domain.Zero(s.currency),
	}

	for _, item := range current.Sorted() {
		line := ViewLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		switch {
		case errors.Is(err, port.ErrNotFound):
			view.Lines = append(view.Lines, line)
			continue
		case err != nil:
			return View{}, apperr.Wrap(apperr.CodeInternal, err, "reading product failed")
		}

		line.Name = product.Name
		line.UnitPrice = product.Price
		line.LineTotal = product.Price.Mul(item.Quantity)

		if total, err := view.Total.Add(line.LineTotal); err == nil {
			line.Available = true
			view.Total = total
		}

		view.Lines = append(view.Lines, line)
	}

	return view, nil
}

func (s *Service) Clear(ctx context.Context, ownerID string) error {
	if err := validateOwner(ownerID); err != nil {
		return err
	}

	if _, err := s.carts.Clear(ctx, ownerID); err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "clearing cart failed")
	}

	return nil
}

func (s *Service) stockOf(ctx context.Context, productID uuid.UUID) (int64, error) {
	stock, _, err := s.catalog.GetStockAndPrice(ctx, productID)
	if errors.Is(err, port.ErrNotFound) {
		return 0, apperr.New(apperr.CodeNotFound, "product not found")
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, err, "reading stock failed")
	}
	return stock, nil
}

func validateOwner(ownerID string) error {
	if ownerID == "" {
		return apperr.New(apperr.CodeValidation, "principal id is empty")
	}
	return nil
}

func insufficientStock(productID uuid.UUID, requested, available int64) error {
	return apperr.New(apperr.CodeInsufficientStock, "not enough stock for product").WithDetails(StockDetails{
		ProductID: productID,
		Requested: requested,
		Available: available,
	})
}
