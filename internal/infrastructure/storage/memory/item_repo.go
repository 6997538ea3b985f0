// Package memory provides the in-process implementation of the typed item repository.
package memory

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/domain"
	"stockroom/pkg/logger"
)

// ItemRepo is a keyed store for one item variant.
// Items are held by value, so every read hands out a copy.
// Not safe for concurrent use.
type ItemRepo[T entity.Storable[T]] struct {
	category string
	items    map[int]T
	hooks    *domain.HookRegistry[T]
}

// NewItemRepo creates an empty repository; category names the variant in errors.
func NewItemRepo[T entity.Storable[T]](category string) *ItemRepo[T] {
	return &ItemRepo[T]{
		category: category,
		items:    make(map[int]T),
		hooks:    domain.NewHookRegistry[T](),
	}
}

// Category implements domain.Stock.
func (r *ItemRepo[T]) Category() string {
	return r.category
}

// Hooks returns the hook registry for external registration.
func (r *ItemRepo[T]) Hooks() *domain.HookRegistry[T] {
	return r.hooks
}

// Add inserts item. Existing entries are never overwritten.
// A taken ID is reported as a duplicate whatever the new item holds; only items
// for free IDs are validated.
func (r *ItemRepo[T]) Add(ctx context.Context, item T) error {
	itemID := item.GetID()
	if _, ok := r.items[itemID]; ok {
		return apperror.NewDuplicate(r.category, itemID)
	}

	if err := item.Validate(ctx); err != nil {
		return err
	}

	if err := r.hooks.Run(ctx, domain.BeforeAdd, item); err != nil {
		return fmt.Errorf("add %s %d: %w", r.category, itemID, err)
	}

	r.items[itemID] = item

	r.runAfter(ctx, domain.AfterAdd, item)
	return nil
}

// GetByID returns a copy of the item.
func (r *ItemRepo[T]) GetByID(ctx context.Context, itemID int) (T, error) {
	item, ok := r.items[itemID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(r.category, itemID)
	}
	return item, nil
}

// Item implements domain.Stock.
func (r *ItemRepo[T]) Item(ctx context.Context, itemID int) (entity.Item, error) {
	item, err := r.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes the entry for itemID.
func (r *ItemRepo[T]) Remove(ctx context.Context, itemID int) error {
	item, ok := r.items[itemID]
	if !ok {
		return apperror.NewNotFound(r.category, itemID)
	}

	if err := r.hooks.Run(ctx, domain.BeforeRemove, item); err != nil {
		return fmt.Errorf("remove %s %d: %w", r.category, itemID, err)
	}

	delete(r.items, itemID)

	r.runAfter(ctx, domain.AfterRemove, item)
	return nil
}

// List returns a snapshot; mutating it does not affect the repository.
func (r *ItemRepo[T]) List(ctx context.Context) ([]T, error) {
	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

// Items implements domain.Stock.
func (r *ItemRepo[T]) Items(ctx context.Context) ([]entity.Item, error) {
	out := make([]entity.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

// UpdateQuantity replaces the stored quantity.
// The quantity bound is checked before the ID lookup, so a negative value
// reports INVALID_QUANTITY even for an unknown ID.
func (r *ItemRepo[T]) UpdateQuantity(ctx context.Context, itemID int, quantity int) error {
	if quantity < 0 {
		return apperror.NewInvalidQuantity(quantity).WithDetail("id", itemID)
	}

	item, ok := r.items[itemID]
	if !ok {
		return apperror.NewNotFound(r.category, itemID)
	}

	updated := item.WithQuantity(quantity)
	r.items[itemID] = updated

	r.runAfter(ctx, domain.AfterQuantityChange, updated)
	return nil
}

// Exists checks if an item with given ID exists.
func (r *ItemRepo[T]) Exists(ctx context.Context, itemID int) bool {
	_, ok := r.items[itemID]
	return ok
}

// Count implements domain.Stock.
func (r *ItemRepo[T]) Count() int {
	return len(r.items)
}

// runAfter executes after-hooks; the mutation is already applied, so failures are only logged.
func (r *ItemRepo[T]) runAfter(ctx context.Context, event domain.HookEvent, item T) {
	if err := r.hooks.Run(ctx, event, item); err != nil {
		logger.Warn(ctx, "after hook failed",
			"event", string(event),
			"category", r.category,
			"item_id", item.GetID(),
			"error", err,
		)
	}
}
