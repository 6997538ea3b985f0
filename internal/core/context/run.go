// Package context provides values carried through a warehouse run.
package context

import (
	"context"

	"stockroom/internal/core/id"
)

// RunContext identifies one CLI invocation and the operation currently executing in it.
type RunContext struct {
	RunID       string
	OperationID string
	Operator    string
}

type runContextKey struct{}

// WithRun adds RunContext to context.
func WithRun(ctx context.Context, run *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, run)
}

// GetRun returns RunContext from context.
func GetRun(ctx context.Context) *RunContext {
	if v, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return v
	}
	return nil
}

// GetRunID returns run ID from context or empty string.
func GetRunID(ctx context.Context) string {
	if r := GetRun(ctx); r != nil {
		return r.RunID
	}
	return ""
}

// GetOperator returns the operator name from context or empty string.
func GetOperator(ctx context.Context) string {
	if r := GetRun(ctx); r != nil {
		return r.Operator
	}
	return ""
}

// NewRunContext creates a new RunContext with a generated run ID.
func NewRunContext(operator string) *RunContext {
	return &RunContext{
		RunID:    id.New().String(),
		Operator: operator,
	}
}

// StartOperation returns a child context whose RunContext carries a fresh operation ID.
// The run ID and operator are inherited; a run is created when ctx has none.
func StartOperation(ctx context.Context) context.Context {
	parent := GetRun(ctx)
	if parent == nil {
		parent = NewRunContext("")
	}
	child := *parent
	child.OperationID = id.Short()
	return WithRun(ctx, &child)
}
