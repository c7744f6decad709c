package checkout

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/apperr"
)

var (
	ErrEmptyCart         = apperr.New(apperr.CodeEmptyCart, "cart is empty")
	ErrInsufficientStock = apperr.New(apperr.CodeInsufficientStock, "not enough stock for product")
	ErrProductNotFound   = apperr.New(apperr.CodeProductNotFound, "product no longer exists")
	ErrCheckoutConflict  = apperr.New(apperr.CodeCheckoutConflict, "checkout conflicted with concurrent updates")
	ErrCheckoutTimeout   = apperr.New(apperr.CodeCheckoutTimeout, "checkout did not finish in time")
)

// LineDetails identifies the cart line that rejected a checkout.
type LineDetails struct {
	ProductID uuid.UUID `json:"product_id"`
	Requested int64     `json:"requested"`
	Available int64     `json:"available"`
}

// RejectedProduct returns the product a checkout error refers to, if any.
func RejectedProduct(err error) (uuid.UUID, bool) {
	typed := apperr.As(err)
	if typed == nil {
		return uuid.Nil, false
	}
	details, ok := typed.Details().(LineDetails)
	if !ok {
		return uuid.Nil, false
	}
	return details.ProductID, true
}
