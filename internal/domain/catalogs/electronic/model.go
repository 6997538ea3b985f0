// Package electronic provides the electronic item variant.
package electronic

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
)

// EntityName is used in error messages and as the repository category.
const EntityName = "electronic item"

// Item is a stocked electronic product.
type Item struct {
	entity.ItemBase

	// Brand is the manufacturer brand
	Brand string `json:"brand"`

	// WarrantyMonths is the warranty duration in months
	WarrantyMonths int `json:"warrantyMonths"`
}

// NewItem creates an electronic Item with all fields set.
func NewItem(itemID int, name string, quantity int, brand string, warrantyMonths int, unitPrice types.Money) Item {
	return Item{
		ItemBase:       entity.NewItemBase(itemID, name, quantity, unitPrice),
		Brand:          brand,
		WarrantyMonths: warrantyMonths,
	}
}

// WithQuantity implements entity.Storable.
func (i Item) WithQuantity(quantity int) Item {
	i.Quantity = quantity
	return i
}

// Fields implements entity.Item.
func (i Item) Fields() map[string]any {
	fields := i.BaseFields()
	fields["brand"] = i.Brand
	fields["warranty_months"] = int64(i.WarrantyMonths)
	return fields
}

// Validate implements entity.Item.
func (i Item) Validate(ctx context.Context) error {
	if err := i.ItemBase.Validate(ctx); err != nil {
		return err
	}

	if i.WarrantyMonths < 0 {
		return apperror.NewValidation("warranty months cannot be negative").
			WithDetail("field", "warrantyMonths").
			WithDetail("value", i.WarrantyMonths)
	}

	return nil
}

func (i Item) String() string {
	return fmt.Sprintf("[Electronic] ID: %d, Name: %s, Brand: %s, Quantity: %d, Warranty: %d months",
		i.ID, i.Name, i.Brand, i.Quantity, i.WarrantyMonths)
}
