package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
)

type CatalogReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
}

type CartService interface {
	AddItem(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, ownerID string, productID uuid.UUID, quantity int64) error
	RemoveItem(ctx context.Context, ownerID string, productID uuid.UUID) error
	View(ctx context.Context, ownerID string) (cart.View, error)
	Clear(ctx context.Context, ownerID string) error
}

type CheckoutEngine interface {
	Checkout(ctx context.Context, ownerID string) (domain.Order, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, ownerID string) ([]domain.Order, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	StockCount  int64     `json:"stock_count"`
}

type cartLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Quantity  int64     `json:"quantity"`
	UnitPrice string    `json:"unit_price,omitempty"`
	LineTotal string    `json:"line_total,omitempty"`
	Available bool      `json:"available"`
}

type cartResponse struct {
	Lines    []cartLineResponse `json:"lines"`
	Total    string             `json:"total"`
	Currency string             `json:"currency"`
}

type orderLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
	LineTotal string    `json:"line_total"`
}

type orderResponse struct {
	ID          uuid.UUID           `json:"order_id"`
	TotalAmount string              `json:"total_amount"`
	Currency    string              `json:"currency"`
	Lines       []orderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1,max=10000"`
}

type updateItemRequest struct {
	// Zero removes the line.
	Quantity *int64 `json:"quantity" validate:"required,max=10000"`
}

func amount(m domain.Money) string {
	return m.Amount.StringFixed(domain.MinorUnitScale(m.Currency))
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Price:       amount(p.Price),
		Currency:    p.Price.Currency.String(),
		StockCount:  p.StockCount,
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: amount(line.UnitPrice),
			LineTotal: amount(line.Total()),
		})
	}

	return orderResponse{
		ID:          o.ID,
		TotalAmount: amount(o.Total),
		Currency:    o.Total.Currency.String(),
		Lines:       lines,
		CreatedAt:   o.CreatedAt,
	}
}

func toCartResponse(v cart.View) cartResponse {
	lines := make([]cartLineResponse, 0, len(v.Lines))
	for _, line := range v.Lines {
		resp := cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Available: line.Available,
		}
		if line.Available {
			resp.UnitPrice = amount(line.UnitPrice)
			resp.LineTotal = amount(line.LineTotal)
		}
		lines = append(lines, resp)
	}

	return cartResponse{
		Lines:    lines,
		Total:    amount(v.Total),
		Currency: v.Total.Currency.String(),
	}
}

// notFound maps repository misses onto NOT_FOUND and anything else onto INTERNAL_ERROR.
func notFound(err error, what string) error {
	if errors.Is(err, port.ErrNotFound) {
		return apperr.New(apperr.CodeNotFound, what+" not found")
	}
	return apperr.Wrap(apperr.CodeInternal, err, "reading "+what+" failed")
}

func health(db Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeError(r.Context(), logg, w, apperr.Wrap(apperr.CodeInternal, err, "database unreachable"))
				return
			}
		}
		writeSuccess(w, map[string]string{"status": "ok"})
	}
}

func listProducts(catalog CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			writeError(r.Context(), logg, w, apperr.Wrap(apperr.CodeInternal, err, "listing products failed"))
			return
		}

		resp := make([]productResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		writeSuccess(w, resp)
	}
}

func getProduct(catalog CatalogReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.GetProduct(r.Context(), id)
		if err != nil {
			writeError(r.Context(), logg, w, notFound(err, "product"))
			return
		}
		writeSuccess(w, toProductResponse(product))
	}
}

func viewCart(carts CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := carts.View(r.Context(), principalFromContext(r.Context()))
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}
		writeSuccess(w, toCartResponse(view))
	}
}

func addCartItem(carts CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			writeError(r.Context(), logg, w, apperr.Wrap(apperr.CodeValidation, err, "invalid product_id").
				WithDetails(map[string]string{"product_id": "must be a valid uuid"}))
			return
		}

		item, err := carts.AddItem(r.Context(), principalFromContext(r.Context()), productID, req.Quantity)
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		writeSuccessStatus(w, http.StatusCreated, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}
}

func updateCartItem(carts CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productID")
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		var req updateItemRequest
		if err := decodeJSONBody(r, &req); err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		if err := carts.UpdateQuantity(r.Context(), principalFromContext(r.Context()), productID, *req.Quantity); err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func removeCartItem(carts CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productID")
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		if err := carts.RemoveItem(r.Context(), principalFromContext(r.Context()), productID); err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func clearCart(carts CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := carts.Clear(r.Context(), principalFromContext(r.Context())); err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func placeOrder(engine CheckoutEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := engine.Checkout(r.Context(), principalFromContext(r.Context()))
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}
		writeSuccessStatus(w, http.StatusCreated, toOrderResponse(order))
	}
}

func listOrders(orders OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := orders.ListOrders(r.Context(), principalFromContext(r.Context()))
		if err != nil {
			writeError(r.Context(), logg, w, apperr.Wrap(apperr.CodeInternal, err, "listing orders failed"))
			return
		}

		resp := make([]orderResponse, 0, len(list))
		for _, o := range list {
			resp = append(resp, toOrderResponse(o))
		}
		writeSuccess(w, resp)
	}
}

// getOrder hides orders of other principals behind NOT_FOUND.
func getOrder(orders OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeError(r.Context(), logg, w, err)
			return
		}

		order, err := orders.GetOrder(r.Context(), id)
		if err != nil {
			writeError(r.Context(), logg, w, notFound(err, "order"))
			return
		}
		if order.OwnerID != principalFromContext(r.Context()) {
			writeError(r.Context(), logg, w, apperr.New(apperr.CodeNotFound, "order not found"))
			return
		}
		writeSuccess(w, toOrderResponse(order))
	}
}
