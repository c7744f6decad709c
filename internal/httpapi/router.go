package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront/internal/logger"
)

type Deps struct {
	Logger   *logger.Logger
	DB       Pinger
	Catalog  CatalogReader
	Carts    CartService
	Checkout CheckoutEngine
	Orders   OrderReader
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(deps Deps) http.Handler {
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(
		recoverer(logg),
		requestID(logg),
		logging(logg),
	)

	r.Get("/healthz", health(deps.DB, logg))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Get("/products", listProducts(deps.Catalog, logg))
	r.Get("/products/{id}", getProduct(deps.Catalog, logg))

	r.Group(func(r chi.Router) {
		r.Use(requirePrincipal(logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", viewCart(deps.Carts, logg))
			r.Delete("/", clearCart(deps.Carts, logg))
			r.Post("/items", addCartItem(deps.Carts, logg))
			r.Put("/items/{productID}", updateCartItem(deps.Carts, logg))
			r.Delete("/items/{productID}", removeCartItem(deps.Carts, logg))
		})

		r.Post("/checkout", placeOrder(deps.Checkout, logg))

		r.Get("/orders", listOrders(deps.Orders, logg))
		r.Get("/orders/{id}", getOrder(deps.Orders, logg))
	})

	return r
}
