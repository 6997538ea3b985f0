// Package warehouse coordinates the per-category item repositories.
// Invariants live in the repositories; the manager only composes them and turns
// failures of its stock operations into reports.
package warehouse

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stockroom/internal/core/apperror"
	appctx "stockroom/internal/core/context"
	"stockroom/internal/core/entity"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/electronic"
	"stockroom/internal/domain/catalogs/grocery"
	"stockroom/pkg/logger"
)

const tracerName = "stockroom/warehouse"

// Category keys accepted by Manager.Stock.
const (
	CategoryElectronics = "electronics"
	CategoryGroceries   = "groceries"
)

// Config configures the manager.
type Config struct {
	Electronics domain.ItemRepository[electronic.Item]
	Groceries   domain.ItemRepository[grocery.Item]

	// Out receives rendered items and operation reports. Defaults to os.Stdout.
	Out io.Writer
	// Logger defaults to logger.Default().
	Logger *logger.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Manager owns one repository per item category.
type Manager struct {
	electronics domain.ItemRepository[electronic.Item]
	groceries   domain.ItemRepository[grocery.Item]

	out    io.Writer
	log    *logger.Logger
	clock  func() time.Time
	tracer trace.Tracer
}

// Report is the outcome of a stock operation whose errors are handled in place.
type Report struct {
	OK       bool
	Category string
	ItemID   int
	// Quantity is the stored quantity after a successful stock change.
	Quantity int
	// Code is the AppError code on failure.
	Code    string
	Message string
}

// NewManager creates a manager and attaches audit hooks to both repositories.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		electronics: cfg.Electronics,
		groceries:   cfg.Groceries,
		out:         cfg.Out,
		log:         cfg.Logger,
		clock:       cfg.Clock,
	}
	if m.out == nil {
		m.out = os.Stdout
	}
	if m.log == nil {
		m.log = logger.Default()
	}
	m.log = m.log.WithComponent("warehouse")
	if m.clock == nil {
		m.clock = time.Now
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	m.tracer = tp.Tracer(tracerName)

	attachAudit(m.log, m.electronics)
	attachAudit(m.log, m.groceries)

	return m
}

func attachAudit[T entity.Storable[T]](log *logger.Logger, repo domain.ItemRepository[T]) {
	category := repo.Category()
	hooks := repo.Hooks()

	hooks.OnAfterAdd(func(ctx context.Context, it T) error {
		log.WithContext(ctx).Debugw("item added", "category", category, "item_id", it.GetID(), "quantity", it.GetQuantity())
		return nil
	})
	hooks.OnAfterRemove(func(ctx context.Context, it T) error {
		log.WithContext(ctx).Debugw("item removed", "category", category, "item_id", it.GetID())
		return nil
	})
	hooks.OnAfterQuantityChange(func(ctx context.Context, it T) error {
		log.WithContext(ctx).Debugw("quantity changed", "category", category, "item_id", it.GetID(), "quantity", it.GetQuantity())
		return nil
	})
}

// Electronics returns the electronics repository.
func (m *Manager) Electronics() domain.ItemRepository[electronic.Item] {
	return m.electronics
}

// Groceries returns the groceries repository.
func (m *Manager) Groceries() domain.ItemRepository[grocery.Item] {
	return m.groceries
}

// Stock resolves a category key to its repository.
func (m *Manager) Stock(category string) (domain.Stock, error) {
	switch category {
	case CategoryElectronics:
		return m.electronics, nil
	case CategoryGroceries:
		return m.groceries, nil
	}
	return nil, apperror.NewValidation("unknown category").
		WithDetail("category", category).
		WithDetail("allowed", []string{CategoryElectronics, CategoryGroceries})
}

// Stocks returns every repository, electronics first.
func (m *Manager) Stocks() []domain.Stock {
	return []domain.Stock{m.electronics, m.groceries}
}

// Now returns the manager's current time.
func (m *Manager) Now() time.Time {
	return m.clock()
}

// PrintAll writes one rendered line per item, ordered by ID.
func (m *Manager) PrintAll(ctx context.Context, stock domain.Stock) error {
	ctx, span := m.start(ctx, "warehouse.print_all", stock)
	defer span.End()

	items, err := sortedItems(ctx, stock)
	if err != nil {
		return fail(span, err)
	}

	for _, it := range items {
		if _, err := fmt.Fprintln(m.out, it.String()); err != nil {
			return fail(span, fmt.Errorf("print %s: %w", stock.Category(), err))
		}
	}

	span.SetAttributes(attribute.Int("items", len(items)))
	return nil
}

// IncreaseStock adds delta to the stored quantity.
// Errors never propagate: they are written to the output and returned as a failed Report.
func (m *Manager) IncreaseStock(ctx context.Context, stock domain.Stock, itemID, delta int) Report {
	ctx, span := m.start(ctx, "warehouse.increase_stock", stock,
		attribute.Int("item.id", itemID),
		attribute.Int("delta", delta),
	)
	defer span.End()

	report := Report{Category: stock.Category(), ItemID: itemID}

	it, err := stock.Item(ctx, itemID)
	if err == nil {
		err = stock.UpdateQuantity(ctx, itemID, it.GetQuantity()+delta)
	}
	if err != nil {
		_ = fail(span, err)
		return m.failed(ctx, report, "Error updating stock", err)
	}

	report.OK = true
	report.Quantity = it.GetQuantity() + delta
	report.Message = fmt.Sprintf("Stock updated for %s. New Quantity: %d", it.GetName(), report.Quantity)
	m.emit(ctx, report)
	return report
}

// RemoveByID removes an item, reporting a missing ID instead of returning it.
func (m *Manager) RemoveByID(ctx context.Context, stock domain.Stock, itemID int) Report {
	ctx, span := m.start(ctx, "warehouse.remove", stock, attribute.Int("item.id", itemID))
	defer span.End()

	report := Report{Category: stock.Category(), ItemID: itemID}

	if err := stock.Remove(ctx, itemID); err != nil {
		_ = fail(span, err)
		return m.failed(ctx, report, "Error removing item", err)
	}

	report.OK = true
	report.Message = fmt.Sprintf("Item with ID %d removed successfully.", itemID)
	m.emit(ctx, report)
	return report
}

func (m *Manager) failed(ctx context.Context, report Report, prefix string, err error) Report {
	report.Code = apperror.CodeOf(err)
	report.Message = fmt.Sprintf("%s: %s", prefix, userMessage(err))
	m.emit(ctx, report)
	return report
}

// emit writes the report line and logs it.
func (m *Manager) emit(ctx context.Context, report Report) {
	fmt.Fprintln(m.out, report.Message)

	log := m.log.WithContext(ctx).With(
		"category", report.Category,
		"item_id", report.ItemID,
	)
	if report.OK {
		log.Infow(report.Message)
		return
	}
	log.Warnw("stock operation failed", "code", report.Code, "message", report.Message)
}

// start opens a span and a fresh operation scope.
func (m *Manager) start(ctx context.Context, name string, stock domain.Stock, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx = appctx.StartOperation(ctx)
	if stock != nil {
		attrs = append(attrs, attribute.String("category", stock.Category()))
	}
	return m.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, apperror.CodeOf(err))
	return err
}

// userMessage returns the human part of an AppError, or the raw error text.
func userMessage(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

func sortedItems(ctx context.Context, stock domain.Stock) ([]entity.Item, error) {
	items, err := stock.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", stock.Category(), err)
	}
	slices.SortFunc(items, func(a, b entity.Item) int {
		return cmp.Compare(a.GetID(), b.GetID())
	})
	return items, nil
}
