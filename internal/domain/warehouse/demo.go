package warehouse

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/electronic"
)

// RunDemo seeds the warehouse and walks through the success and failure paths:
// listing, restocking, a duplicate insert, removal of a missing ID and a negative quantity.
// Direct repository calls get raw errors and handle them here.
func (m *Manager) RunDemo(ctx context.Context) error {
	if err := m.Seed(ctx); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "\n--- Grocery Items ---")
	if err := m.PrintAll(ctx, m.groceries); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "\n--- Electronic Items ---")
	if err := m.PrintAll(ctx, m.electronics); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "\n--- Restocking ---")
	m.IncreaseStock(ctx, m.electronics, 2, 5)

	fmt.Fprintln(m.out, "\n--- Testing Exceptions ---")

	err := m.electronics.Add(ctx, electronic.NewItem(1, "Tablet", 5, "Apple", 12, types.MustMoney("499.00")))
	switch {
	case apperror.IsDuplicate(err):
		fmt.Fprintf(m.out, "Duplicate Test: %s\n", userMessage(err))
	case err != nil:
		return err
	default:
		return fmt.Errorf("duplicate insert of electronic item 1 was accepted")
	}

	m.RemoveByID(ctx, m.groceries, 999)

	err = m.electronics.UpdateQuantity(ctx, 2, -5)
	switch {
	case apperror.IsInvalidQuantity(err):
		fmt.Fprintf(m.out, "Invalid Quantity Test: %s\n", userMessage(err))
	case err != nil:
		return err
	default:
		return fmt.Errorf("negative quantity for electronic item 2 was accepted")
	}

	return nil
}
