package warehouse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/electronic"
	"stockroom/internal/domain/catalogs/grocery"
	"stockroom/internal/domain/filter"
	"stockroom/internal/infrastructure/storage/memory"
	"stockroom/pkg/logger"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	m := NewManager(Config{
		Electronics: memory.NewItemRepo[electronic.Item](electronic.EntityName),
		Groceries:   memory.NewItemRepo[grocery.Item](grocery.EntityName),
		Out:         out,
		Logger:      logger.Nop(),
		Clock:       func() time.Time { return fixedNow },
	})
	return m, out
}

func seeded(t *testing.T) (*Manager, *bytes.Buffer) {
	t.Helper()
	m, out := newManager(t)
	require.NoError(t, m.Seed(context.Background()))
	out.Reset()
	return m, out
}

func ids(items []entity.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)

	assert.Equal(t, 2, m.Electronics().Count())
	assert.Equal(t, 2, m.Groceries().Count())

	laptop, err := m.Electronics().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dell", laptop.Brand)
	assert.Equal(t, 24, laptop.WarrantyMonths)

	milk, err := m.Groceries().GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, 7), milk.ExpiryDate)
}

func TestSeed_TwiceIsDuplicate(t *testing.T) {
	m, _ := seeded(t)

	err := m.Seed(context.Background())

	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, 2, m.Electronics().Count())
}

func TestPrintAll(t *testing.T) {
	m, out := seeded(t)

	require.NoError(t, m.PrintAll(context.Background(), m.Electronics()))

	assert.Equal(t,
		"[Electronic] ID: 1, Name: Laptop, Brand: Dell, Quantity: 10, Warranty: 24 months\n"+
			"[Electronic] ID: 2, Name: Smartphone, Brand: Samsung, Quantity: 15, Warranty: 12 months\n",
		out.String())
}

func TestPrintAll_OrdersExtremeIDs(t *testing.T) {
	ctx := context.Background()
	m, out := newManager(t)

	for _, itemID := range []int{math.MaxInt, -1, math.MinInt + 1, 0} {
		require.NoError(t, m.Electronics().Add(ctx, electronic.NewItem(itemID, "Cable", 1, "Anker", 12, types.Zero())))
	}

	require.NoError(t, m.PrintAll(ctx, m.Electronics()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	for i, itemID := range []int{math.MinInt + 1, -1, 0, math.MaxInt} {
		assert.Contains(t, lines[i], fmt.Sprintf("ID: %d,", itemID))
	}

	found, err := m.Find(ctx, m.Electronics(), "true")
	require.NoError(t, err)
	assert.Equal(t, []int{math.MinInt + 1, -1, 0, math.MaxInt}, ids(found))
}

func TestExpiringWithin_SameExpiryOrdersByID(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	expiry := fixedNow.Add(time.Hour)

	for _, itemID := range []int{math.MaxInt, math.MinInt + 1, -1} {
		require.NoError(t, m.Groceries().Add(ctx, grocery.NewItem(itemID, "Yogurt", 1, expiry, types.Zero())))
	}

	soon, err := m.ExpiringWithin(ctx, 2*time.Hour)
	require.NoError(t, err)
	require.Len(t, soon, 3)
	assert.Equal(t, []int{math.MinInt + 1, -1, math.MaxInt}, []int{soon[0].ID, soon[1].ID, soon[2].ID})
}

func TestIncreaseStock(t *testing.T) {
	ctx := context.Background()
	m, out := seeded(t)

	report := m.IncreaseStock(ctx, m.Electronics(), 2, 5)

	assert.True(t, report.OK)
	assert.Equal(t, 20, report.Quantity)
	assert.Equal(t, "Stock updated for Smartphone. New Quantity: 20", report.Message)
	assert.Contains(t, out.String(), report.Message)

	phone, err := m.Electronics().GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, phone.Quantity)
}

func TestIncreaseStock_FailuresAreReported(t *testing.T) {
	ctx := context.Background()
	m, out := seeded(t)

	missing := m.IncreaseStock(ctx, m.Groceries(), 999, 1)
	assert.False(t, missing.OK)
	assert.Equal(t, apperror.CodeNotFound, missing.Code)
	assert.Equal(t, "Error updating stock: grocery item with ID 999 not found", missing.Message)

	negative := m.IncreaseStock(ctx, m.Groceries(), 102, -31)
	assert.False(t, negative.OK)
	assert.Equal(t, apperror.CodeInvalidQuantity, negative.Code)

	bread, err := m.Groceries().GetByID(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, 30, bread.Quantity)

	assert.Equal(t, 2, strings.Count(out.String(), "Error updating stock"))
}

func TestRemoveByID(t *testing.T) {
	ctx := context.Background()
	m, out := seeded(t)

	report := m.RemoveByID(ctx, m.Groceries(), 101)
	assert.True(t, report.OK)
	assert.Equal(t, "Item with ID 101 removed successfully.", report.Message)
	assert.False(t, m.Groceries().Exists(ctx, 101))
	assert.Contains(t, out.String(), report.Message)
}

func TestRemoveByID_MissingIsHandled(t *testing.T) {
	ctx := context.Background()
	m, out := seeded(t)

	report := m.RemoveByID(ctx, m.Groceries(), 999)

	assert.False(t, report.OK)
	assert.Equal(t, apperror.CodeNotFound, report.Code)
	assert.Equal(t, "Error removing item: grocery item with ID 999 not found", report.Message)
	assert.Contains(t, out.String(), "Error removing item")
	assert.Equal(t, 2, m.Groceries().Count())
}

func TestRemoveByID_HookVetoIsReported(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)
	m.Electronics().Hooks().OnBeforeRemove(func(ctx context.Context, it electronic.Item) error {
		return errors.New("reserved for order 42")
	})

	report := m.RemoveByID(ctx, m.Electronics(), 1)

	assert.False(t, report.OK)
	assert.Equal(t, apperror.CodeInternal, report.Code)
	assert.Contains(t, report.Message, "reserved for order 42")
	assert.True(t, m.Electronics().Exists(ctx, 1))
}

func TestStock(t *testing.T) {
	m, _ := newManager(t)

	s, err := m.Stock(CategoryGroceries)
	require.NoError(t, err)
	assert.Equal(t, grocery.EntityName, s.Category())

	_, err = m.Stock("furniture")
	assert.True(t, apperror.IsValidation(err))

	assert.Len(t, m.Stocks(), 2)
}

func TestStockValue(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)

	electronics, err := m.StockValue(ctx, m.Electronics())
	require.NoError(t, err)
	// 10 * 1199.00 + 15 * 799.00
	assert.Equal(t, "23975.00", types.FormatMoney(electronics))

	groceries, err := m.StockValue(ctx, m.Groceries())
	require.NoError(t, err)
	// 20 * 1.29 + 30 * 2.49
	assert.Equal(t, "100.50", types.FormatMoney(groceries))
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)

	low, err := m.Find(ctx, m.Electronics(), "item.quantity < 15")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(low))

	soon, err := m.Find(ctx, m.Groceries(), `item.expiry < now + duration("72h")`)
	require.NoError(t, err)
	assert.Equal(t, []int{102}, ids(soon))

	_, err = m.Find(ctx, m.Electronics(), "item.quantity <")
	assert.Equal(t, apperror.CodeInvalidFilter, apperror.CodeOf(err))
}

func TestFindWhere(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)

	found, err := m.FindWhere(ctx, m.Electronics(),
		filter.Item{Field: "brand", Operator: filter.InList, Value: []string{"Samsung", "Apple"}},
		filter.Item{Field: "quantity", Operator: filter.GreaterOrEqual, Value: 15},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(found))

	all, err := m.FindWhere(ctx, m.Groceries())
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102}, ids(all))
}

func TestExpiringWithin(t *testing.T) {
	ctx := context.Background()
	m, _ := seeded(t)

	soon, err := m.ExpiringWithin(ctx, 72*time.Hour)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, "Bread", soon[0].Name)

	week, err := m.ExpiringWithin(ctx, 8*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, week, 2)
	assert.Equal(t, 102, week[0].ID, "soonest first")

	none, err := m.ExpiringWithin(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRunDemo(t *testing.T) {
	m, out := newManager(t)

	require.NoError(t, m.RunDemo(context.Background()))

	text := out.String()
	assert.Contains(t, text, "--- Grocery Items ---")
	assert.Contains(t, text, "[Grocery] ID: 101, Name: Milk, Quantity: 20, Expiry: 2026-10-24")
	assert.Contains(t, text, "--- Electronic Items ---")
	assert.Contains(t, text, "Stock updated for Smartphone. New Quantity: 20")
	assert.Contains(t, text, "Duplicate Test: electronic item with ID 1 already exists")
	assert.Contains(t, text, "Error removing item: grocery item with ID 999 not found")
	assert.Contains(t, text, "Invalid Quantity Test: quantity cannot be negative")

	laptop, err := m.Electronics().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", laptop.Name)
	assert.Equal(t, 10, laptop.Quantity)
}
