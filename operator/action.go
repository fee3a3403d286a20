package operator

import (
	"context"
	"fmt"

	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/store"
)

// DefaultResultDiscriminator is the fixed trailing key segment under which
// validation results are filed when no override is configured.
const DefaultResultDiscriminator = "validation_result"

// Action is a single unit of post-validation persistence work. Execution
// receives the run's result read-only plus the registry for target store
// resolution, and writes to exactly one target store per invocation.
type Action interface {
	// Name identifies the action in operator outcomes and logs.
	Name() string

	// Run executes the action. Any error aborts the remainder of the
	// owning operator's pipeline.
	Run(ctx context.Context, result *core.ValidationResult, reg *store.Registry) error
}

// StoreValidationResultAction persists the full validation result document
// into its target store, keyed by the result's identifying fields
// (suite name, run id, batch id) plus a fixed discriminator segment.
type StoreValidationResultAction struct {
	name          string
	targetStore   string
	discriminator string
	section       string
}

// StoreValidationResultOptions configures optional key layout parameters.
type StoreValidationResultOptions struct {
	// Discriminator overrides the fixed trailing segment
	// (DefaultResultDiscriminator when empty).
	Discriminator string

	// Section, when set, is appended as one more key segment; used by
	// stores whose template files artifacts under a leading site section
	// (e.g. "profiling").
	Section string
}

// NewStoreValidationResultAction creates an action that writes validation
// results to the named target store.
func NewStoreValidationResultAction(name, targetStore string, optFns ...func(*StoreValidationResultOptions)) *StoreValidationResultAction {
	opts := StoreValidationResultOptions{Discriminator: DefaultResultDiscriminator}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &StoreValidationResultAction{
		name:          name,
		targetStore:   targetStore,
		discriminator: opts.Discriminator,
		section:       opts.Section,
	}
}

// Name implements Action.
func (a *StoreValidationResultAction) Name() string { return a.name }

// Key computes the store key for result. Layout: suite name, run id,
// batch id, discriminator, then the optional section segment.
func (a *StoreValidationResultAction) Key(result *core.ValidationResult) core.StoreKey {
	segments := []string{result.SuiteName, result.RunID, result.BatchID, a.discriminator}
	if a.section != "" {
		segments = append(segments, a.section)
	}
	return core.NewStoreKey(segments...)
}

// Run implements Action.
func (a *StoreValidationResultAction) Run(ctx context.Context, result *core.ValidationResult, reg *store.Registry) error {
	target, err := reg.Resolve(a.targetStore)
	if err != nil {
		return fmt.Errorf("action %s: %w", a.name, err)
	}
	if err := target.Save(ctx, a.Key(result), result); err != nil {
		return fmt.Errorf("action %s: %w", a.name, err)
	}
	return nil
}

// StoreEvaluationParamsAction extracts the evaluation-parameter bindings
// from a validation result and persists them keyed by run id alone, so
// dependent suites can resolve them independent of the result store's key
// layout.
type StoreEvaluationParamsAction struct {
	name        string
	targetStore string
}

// NewStoreEvaluationParamsAction creates an action that writes extracted
// evaluation parameters to the named target store.
func NewStoreEvaluationParamsAction(name, targetStore string) *StoreEvaluationParamsAction {
	return &StoreEvaluationParamsAction{name: name, targetStore: targetStore}
}

// Name implements Action.
func (a *StoreEvaluationParamsAction) Name() string { return a.name }

// Key computes the store key for result: the run id alone.
func (a *StoreEvaluationParamsAction) Key(result *core.ValidationResult) core.StoreKey {
	return core.NewStoreKey(result.RunID)
}

// Run implements Action.
func (a *StoreEvaluationParamsAction) Run(ctx context.Context, result *core.ValidationResult, reg *store.Registry) error {
	target, err := reg.Resolve(a.targetStore)
	if err != nil {
		return fmt.Errorf("action %s: %w", a.name, err)
	}
	params := result.EvaluationParameters
	if params == nil {
		params = map[string]any{}
	}
	if err := target.Save(ctx, a.Key(result), params); err != nil {
		return fmt.Errorf("action %s: %w", a.name, err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Action = (*StoreValidationResultAction)(nil)
	_ Action = (*StoreEvaluationParamsAction)(nil)
)
