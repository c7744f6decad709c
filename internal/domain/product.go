package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       Money
	StockCount  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) HasStock(qty int64) bool {
	return qty > 0 && p.StockCount >= qty
}
