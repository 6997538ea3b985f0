// Package domain provides the inventory repository contracts and lifecycle hooks.
package domain

import (
	"context"

	"stockroom/internal/core/entity"
)

// --- Repository Interfaces ---

// Stock is the variant-agnostic view of a typed repository.
// The warehouse coordinator works only through this interface.
type Stock interface {
	// Category names the item variant held (e.g. "electronic item")
	Category() string

	// Item retrieves an item by ID
	Item(ctx context.Context, itemID int) (entity.Item, error)

	// Items returns a snapshot of every stored item
	Items(ctx context.Context) ([]entity.Item, error)

	// UpdateQuantity replaces the quantity of an existing item.
	// Negative quantities are rejected before the ID is looked up.
	UpdateQuantity(ctx context.Context, itemID int, quantity int) error

	// Remove deletes an item
	Remove(ctx context.Context, itemID int) error

	// Count returns the number of stored items
	Count() int
}

// ItemRepository defines the typed store for one item variant.
type ItemRepository[T entity.Storable[T]] interface {
	Stock

	// Add inserts a new item; the ID must not be in use
	Add(ctx context.Context, item T) error

	// GetByID retrieves a copy of the item
	GetByID(ctx context.Context, itemID int) (T, error)

	// List returns independent copies of all items, in no particular order
	List(ctx context.Context) ([]T, error)

	// Exists checks if an item with given ID exists
	Exists(ctx context.Context, itemID int) bool

	// Hooks returns the lifecycle hook registry
	Hooks() *HookRegistry[T]
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeAdd           HookEvent = "before_add"
	AfterAdd            HookEvent = "after_add"
	BeforeRemove        HookEvent = "before_remove"
	AfterRemove         HookEvent = "after_remove"
	AfterQuantityChange HookEvent = "after_quantity_change"
)

// Hook is a function that runs at specific lifecycle points.
// For AfterQuantityChange the item carries the new quantity.
type Hook[T any] func(ctx context.Context, item T) error

// HookRegistry stores lifecycle hooks for an item type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, item T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeAdd registers a hook that can veto an insertion.
func (r *HookRegistry[T]) OnBeforeAdd(hook Hook[T]) {
	r.On(BeforeAdd, hook)
}

// OnAfterAdd registers a hook to run after an insertion.
func (r *HookRegistry[T]) OnAfterAdd(hook Hook[T]) {
	r.On(AfterAdd, hook)
}

// OnBeforeRemove registers a hook that can veto a removal.
func (r *HookRegistry[T]) OnBeforeRemove(hook Hook[T]) {
	r.On(BeforeRemove, hook)
}

// OnAfterRemove registers a hook to run after a removal.
func (r *HookRegistry[T]) OnAfterRemove(hook Hook[T]) {
	r.On(AfterRemove, hook)
}

// OnAfterQuantityChange registers a hook to run after a quantity update.
func (r *HookRegistry[T]) OnAfterQuantityChange(hook Hook[T]) {
	r.On(AfterQuantityChange, hook)
}
