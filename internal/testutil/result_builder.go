package testutil

import (
	"time"

	"github.com/hupe1980/expectstore/core"
)

// ResultBuilder helps construct validation results with fluent chaining for
// tests. Example:
//
//	res := NewResultBuilder("run7").Suite("suite1").Passing(3).Failing(1).Build()
type ResultBuilder struct {
	runID   string
	suite   string
	batch   string
	results []core.ExpectationResult
	params  map[string]any
}

// NewResultBuilder creates a builder for a result with the given run id.
// Use chainable methods (Suite, Batch, Passing, Failing, Param) then call
// Build.
func NewResultBuilder(runID string) *ResultBuilder {
	return &ResultBuilder{runID: runID, suite: "suite1", batch: "batchabc"}
}

// Suite sets the expectation suite name (chainable).
func (b *ResultBuilder) Suite(name string) *ResultBuilder {
	b.suite = name
	return b
}

// Batch sets the batch identifier (chainable).
func (b *ResultBuilder) Batch(id string) *ResultBuilder {
	b.batch = id
	return b
}

// Passing appends n successful expectation outcomes (chainable).
func (b *ResultBuilder) Passing(n int) *ResultBuilder {
	for range n {
		b.results = append(b.results, core.ExpectationResult{ExpectationType: "expect_column_values_to_not_be_null", Success: true})
	}
	return b
}

// Failing appends n failed expectation outcomes (chainable).
func (b *ResultBuilder) Failing(n int) *ResultBuilder {
	for range n {
		b.results = append(b.results, core.ExpectationResult{ExpectationType: "expect_table_row_count_to_be_between", Success: false})
	}
	return b
}

// Param binds an evaluation parameter on the result (chainable).
func (b *ResultBuilder) Param(name string, value any) *ResultBuilder {
	if b.params == nil {
		b.params = map[string]any{}
	}
	b.params[name] = value
	return b
}

// Build returns the assembled *core.ValidationResult.
func (b *ResultBuilder) Build() *core.ValidationResult {
	return &core.ValidationResult{
		RunID:                b.runID,
		SuiteName:            b.suite,
		BatchID:              b.batch,
		RunTime:              time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Results:              b.results,
		EvaluationParameters: b.params,
	}
}
