package warehouse

import (
	"context"
	"fmt"

	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/electronic"
	"stockroom/internal/domain/catalogs/grocery"
)

// Seed populates both repositories with the initial stock.
// It goes through Add, so a second call fails with a duplicate error.
func (m *Manager) Seed(ctx context.Context) error {
	ctx, span := m.start(ctx, "warehouse.seed", nil)
	defer span.End()

	now := m.clock()

	electronics := []electronic.Item{
		electronic.NewItem(1, "Laptop", 10, "Dell", 24, types.MustMoney("1199.00")),
		electronic.NewItem(2, "Smartphone", 15, "Samsung", 12, types.MustMoney("799.00")),
	}
	groceries := []grocery.Item{
		grocery.NewItem(101, "Milk", 20, now.AddDate(0, 0, 7), types.MustMoney("1.29")),
		grocery.NewItem(102, "Bread", 30, now.AddDate(0, 0, 2), types.MustMoney("2.49")),
	}

	for _, it := range electronics {
		if err := m.electronics.Add(ctx, it); err != nil {
			return fail(span, fmt.Errorf("seed %s: %w", m.electronics.Category(), err))
		}
	}
	for _, it := range groceries {
		if err := m.groceries.Add(ctx, it); err != nil {
			return fail(span, fmt.Errorf("seed %s: %w", m.groceries.Category(), err))
		}
	}

	m.log.WithContext(ctx).Infow("warehouse seeded",
		"electronics", m.electronics.Count(),
		"groceries", m.groceries.Count(),
	)
	return nil
}
