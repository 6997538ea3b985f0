package warehouse

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/grocery"
	"stockroom/internal/domain/filter"
)

// StockValue returns the sum of unit price times quantity over the repository.
func (m *Manager) StockValue(ctx context.Context, stock domain.Stock) (types.Money, error) {
	ctx, span := m.start(ctx, "warehouse.stock_value", stock)
	defer span.End()

	items, err := stock.Items(ctx)
	if err != nil {
		return types.Zero(), fail(span, fmt.Errorf("list %s: %w", stock.Category(), err))
	}

	total := types.Zero()
	for _, it := range items {
		total = total.Add(types.Extend(it.GetUnitPrice(), it.GetQuantity()))
	}

	span.SetAttributes(attribute.String("value", types.FormatMoney(total)))
	return total, nil
}

// Find returns the items, ordered by ID, for which the CEL expression holds.
// The expression sees the item attributes as `item` and the manager clock as `now`.
func (m *Manager) Find(ctx context.Context, stock domain.Stock, expr string) ([]entity.Item, error) {
	return m.find(ctx, stock, func() (*filter.Predicate, error) {
		return filter.Compile(expr)
	})
}

// FindWhere is Find for structured filter rows combined with AND.
func (m *Manager) FindWhere(ctx context.Context, stock domain.Stock, rows ...filter.Item) ([]entity.Item, error) {
	return m.find(ctx, stock, func() (*filter.Predicate, error) {
		return filter.CompileItems(rows...)
	})
}

func (m *Manager) find(ctx context.Context, stock domain.Stock, compile func() (*filter.Predicate, error)) ([]entity.Item, error) {
	ctx, span := m.start(ctx, "warehouse.find", stock)
	defer span.End()

	pred, err := compile()
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("filter", pred.Expression()))

	matched, err := m.match(ctx, stock, pred)
	if err != nil {
		return nil, fail(span, err)
	}
	return matched, nil
}

func (m *Manager) match(ctx context.Context, stock domain.Stock, pred *filter.Predicate) ([]entity.Item, error) {
	items, err := sortedItems(ctx, stock)
	if err != nil {
		return nil, err
	}

	now := m.clock()
	var out []entity.Item
	for _, it := range items {
		ok, err := pred.Match(it, now)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// ExpiringWithin returns groceries whose expiry falls before now+window, soonest first.
// Already expired items are included.
func (m *Manager) ExpiringWithin(ctx context.Context, window time.Duration) ([]grocery.Item, error) {
	ctx, span := m.start(ctx, "warehouse.expiring", m.groceries, attribute.String("window", window.String()))
	defer span.End()

	items, err := m.groceries.List(ctx)
	if err != nil {
		return nil, fail(span, fmt.Errorf("list %s: %w", m.groceries.Category(), err))
	}

	cutoff := m.clock().Add(window)
	var out []grocery.Item
	for _, it := range items {
		if it.ExpiryDate.Before(cutoff) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b grocery.Item) int {
		if c := a.ExpiryDate.Compare(b.ExpiryDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
