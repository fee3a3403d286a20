package core

import "time"

// ExpectationResult records the outcome of a single expectation checked
// against a batch of data. The expectation semantics themselves live in the
// execution engine; this layer only persists outcomes.
type ExpectationResult struct {
	ExpectationType string         `json:"expectation_type"`
	Success         bool           `json:"success"`
	Details         map[string]any `json:"details,omitempty"`
}

// ValidationResult is the immutable outcome of one validation run, produced
// by the execution engine and consumed read-only by the action pipeline.
// Actions derive store keys from its identifying fields (RunID, SuiteName,
// BatchID) and persist it, or artifacts extracted from it, through the
// store registry.
type ValidationResult struct {
	RunID     string    `json:"run_id"`
	SuiteName string    `json:"suite_name"`
	BatchID   string    `json:"batch_id"`
	RunTime   time.Time `json:"run_time"`

	Results []ExpectationResult `json:"results"`

	// EvaluationParameters holds parameter bindings produced by the run
	// (e.g. observed row counts) that later runs of dependent suites
	// resolve by name.
	EvaluationParameters map[string]any `json:"evaluation_parameters,omitempty"`
}

// Passed reports whether every expectation in the result succeeded. A result
// with no expectations passes vacuously.
func (r *ValidationResult) Passed() bool {
	for _, er := range r.Results {
		if !er.Success {
			return false
		}
	}
	return true
}

// ResultStatistics summarizes per-expectation outcomes.
type ResultStatistics struct {
	Evaluated  int     `json:"evaluated_expectations"`
	Successful int     `json:"successful_expectations"`
	Failed     int     `json:"unsuccessful_expectations"`
	SuccessPct float64 `json:"success_percent"`
}

// Statistics computes summary counts over the per-expectation outcomes.
func (r *ValidationResult) Statistics() ResultStatistics {
	stats := ResultStatistics{Evaluated: len(r.Results)}
	for _, er := range r.Results {
		if er.Success {
			stats.Successful++
		} else {
			stats.Failed++
		}
	}
	if stats.Evaluated > 0 {
		stats.SuccessPct = float64(stats.Successful) / float64(stats.Evaluated) * 100
	}
	return stats
}
