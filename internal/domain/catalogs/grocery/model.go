// Package grocery provides the grocery item variant.
package grocery

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
)

// EntityName is used in error messages and as the repository category.
const EntityName = "grocery item"

// DateLayout is the calendar-date rendering of ExpiryDate.
const DateLayout = "2006-01-02"

// Item is a perishable stocked product.
type Item struct {
	entity.ItemBase

	// ExpiryDate is the calendar date after which the item must not be sold
	ExpiryDate time.Time `json:"expiryDate"`
}

// NewItem creates a grocery Item with all fields set.
func NewItem(itemID int, name string, quantity int, expiryDate time.Time, unitPrice types.Money) Item {
	return Item{
		ItemBase:   entity.NewItemBase(itemID, name, quantity, unitPrice),
		ExpiryDate: expiryDate,
	}
}

// WithQuantity implements entity.Storable.
func (i Item) WithQuantity(quantity int) Item {
	i.Quantity = quantity
	return i
}

// IsExpired reports whether the item has expired at the given instant.
func (i Item) IsExpired(at time.Time) bool {
	return !at.Before(i.ExpiryDate)
}

// Fields implements entity.Item.
func (i Item) Fields() map[string]any {
	fields := i.BaseFields()
	fields["expiry"] = i.ExpiryDate
	return fields
}

// Validate implements entity.Item.
func (i Item) Validate(ctx context.Context) error {
	if err := i.ItemBase.Validate(ctx); err != nil {
		return err
	}

	if i.ExpiryDate.IsZero() {
		return apperror.NewValidation("expiry date is required").
			WithDetail("field", "expiryDate")
	}

	return nil
}

func (i Item) String() string {
	return fmt.Sprintf("[Grocery] ID: %d, Name: %s, Quantity: %d, Expiry: %s",
		i.ID, i.Name, i.Quantity, i.ExpiryDate.Format(DateLayout))
}
