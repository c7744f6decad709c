package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        uuid.UUID
	OwnerID   string
	Total     Money
	Lines     []OrderLine
	CreatedAt time.Time
}

type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice Money
}

func (l OrderLine) Total() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// SumLines returns the exact sum of quantity*unit price over all lines.
// All lines must share one currency.
func SumLines(lines []OrderLine) (Money, error) {
	if len(lines) == 0 {
		return Money{}, fmt.Errorf("order has no lines")
	}

	total := Zero(lines[0].UnitPrice.Currency)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Money{}, fmt.Errorf("line[%s] quantity %d is not positive", line.ProductID, line.Quantity)
		}

		var err error
		total, err = total.Add(line.Total())
		if err != nil {
			return Money{}, fmt.Errorf("line[%s]: %w", line.ProductID, err)
		}
	}

	return total, nil
}

// NewOrder assembles an unsaved order whose total is the sum of its lines.
func NewOrder(ownerID string, lines []OrderLine) (Order, error) {
	if ownerID == "" {
		return Order{}, fmt.Errorf("ownerID is empty")
	}

	total, err := SumLines(lines)
	if err != nil {
		return Order{}, fmt.Errorf("SumLines: %w", err)
	}

	return Order{
		OwnerID: ownerID,
		Total:   total,
		Lines:   lines,
	}, nil
}
