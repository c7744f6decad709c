package domain

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	OwnerID string
	Items   []CartItem
}

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Sorted returns the items ordered by product id, the order in which product rows are locked.
func (c Cart) Sorted() []CartItem {
	items := slices.Clone(c.Items)
	slices.SortFunc(items, func(a, b CartItem) int {
		return CompareIDs(a.ProductID, b.ProductID)
	})
	return items
}

func (c Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Sorted() {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// CompareIDs orders ids by their bytes, matching Postgres uuid ordering.
func CompareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
