// Package entity defines the capability contract shared by every storable inventory item.
package entity

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
)

// Item is the read-only capability every inventory record exposes.
// Variants add their own attributes but never change the meaning of these.
type Item interface {
	fmt.Stringer

	// GetID returns the identifier, unique within one repository.
	GetID() int
	// GetName returns the display name.
	GetName() string
	// GetQuantity returns the units currently in stock.
	GetQuantity() int
	// GetUnitPrice returns the price of a single unit.
	GetUnitPrice() types.Money
	// Fields returns a flat attribute map used by filters.
	Fields() map[string]any

	// Validate checks item invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Storable is the constraint satisfied by item variants that a typed repository can hold.
// WithQuantity returns a copy in which only the quantity differs.
type Storable[T any] interface {
	Item
	WithQuantity(quantity int) T
}

// ItemBase carries the fields shared by all variants.
// Variants embed it by value.
type ItemBase struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
}

// NewItemBase creates an ItemBase with required fields.
func NewItemBase(itemID int, name string, quantity int, unitPrice types.Money) ItemBase {
	return ItemBase{
		ID:        itemID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

func (b ItemBase) GetID() int                { return b.ID }
func (b ItemBase) GetName() string           { return b.Name }
func (b ItemBase) GetQuantity() int          { return b.Quantity }
func (b ItemBase) GetUnitPrice() types.Money { return b.UnitPrice }

// BaseFields returns the shared attributes keyed by their filter names.
func (b ItemBase) BaseFields() map[string]any {
	price, _ := b.UnitPrice.Float64()
	return map[string]any{
		"id":         int64(b.ID),
		"name":       b.Name,
		"quantity":   int64(b.Quantity),
		"unit_price": price,
	}
}

// Validate checks the shared invariants.
func (b ItemBase) Validate(ctx context.Context) error {
	if b.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name").
			WithDetail("id", b.ID)
	}

	if b.Quantity < 0 {
		return apperror.NewInvalidQuantity(b.Quantity).
			WithDetail("id", b.ID)
	}

	if b.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice").
			WithDetail("id", b.ID)
	}

	return nil
}
