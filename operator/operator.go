package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/logging"
	"github.com/hupe1980/expectstore/store"
)

// ActionStatus tracks one action through a pipeline invocation.
type ActionStatus int

const (
	// StatusPending means the action has not started.
	StatusPending ActionStatus = iota
	// StatusCompleted means the action ran and its write succeeded.
	StatusCompleted
	// StatusFailed means the action ran and returned an error.
	StatusFailed
	// StatusSkipped means an earlier action failed before this one ran.
	StatusSkipped
)

// String returns the status name.
func (s ActionStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// Severity is the operator's classification of an overall validation run.
type Severity int

const (
	// SeverityPassed means every consulted expectation succeeded.
	SeverityPassed Severity = iota
	// SeverityWarning means a non-critical suite failed.
	SeverityWarning
	// SeverityFailure means a critical suite failed.
	SeverityFailure
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFailure:
		return "failure"
	default:
		return "passed"
	}
}

// Classifier synthesizes a run-level severity from a validation result.
// Operator variants differ only in classification, never in their
// action-execution mechanics.
type Classifier interface {
	Classify(result *core.ValidationResult) Severity
}

// PassFailClassifier maps any expectation failure to SeverityFailure.
type PassFailClassifier struct{}

// Classify implements Classifier.
func (PassFailClassifier) Classify(result *core.ValidationResult) Severity {
	if result.Passed() {
		return SeverityPassed
	}
	return SeverityFailure
}

// WarningAndFailureClassifier distinguishes warning-level from
// failure-level expectation suites by suite name suffix, mirroring the
// "<base>.warning" / "<base>.failure" naming convention.
type WarningAndFailureClassifier struct {
	// FailureSuffix marks critical suites; defaults to ".failure".
	FailureSuffix string
}

// Classify implements Classifier.
func (c WarningAndFailureClassifier) Classify(result *core.ValidationResult) Severity {
	if result.Passed() {
		return SeverityPassed
	}
	suffix := c.FailureSuffix
	if suffix == "" {
		suffix = ".failure"
	}
	if strings.HasSuffix(result.SuiteName, suffix) {
		return SeverityFailure
	}
	return SeverityWarning
}

// ActionOutcome records one action's terminal status within a run.
type ActionOutcome struct {
	Name   string
	Status ActionStatus
	Err    error
}

// Outcome is the structured result of one operator invocation: which
// actions completed, which failed, which were skipped, and the synthesized
// run-level classification. Writes performed by completed actions are
// durable even when a later action failed.
type Outcome struct {
	Operator string
	RunID    string
	Actions  []ActionOutcome
	Severity Severity
	Success  bool
}

// FailedAction returns the name of the failing action, or "" when the run
// completed.
func (o *Outcome) FailedAction() string {
	for _, a := range o.Actions {
		if a.Status == StatusFailed {
			return a.Name
		}
	}
	return ""
}

// Options configures optional ValidationOperator behavior.
type Options struct {
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// ValidationOperator executes an ordered, immutable action list against
// validation outcomes. It never parallelizes its own actions: ordering is a
// declared contract, since a later action may read back what an earlier
// action just persisted.
type ValidationOperator struct {
	name     string
	registry *store.Registry
	actions  []Action
	classify Classifier
	logger   logging.Logger
}

// newOperator wires the shared mechanics of all operator variants.
func newOperator(name string, reg *store.Registry, actions []Action, classify Classifier, optFns ...func(*Options)) (*ValidationOperator, error) {
	if name == "" {
		return nil, errors.New("operator: name must not be empty")
	}
	if reg == nil {
		return nil, fmt.Errorf("operator %s: registry must not be nil", name)
	}
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &ValidationOperator{
		name:     name,
		registry: reg,
		actions:  actions,
		classify: classify,
		logger:   opts.Logger,
	}, nil
}

// NewActionListOperator creates the plain operator variant: it runs its
// actions in order and classifies the run with PassFailClassifier.
func NewActionListOperator(name string, reg *store.Registry, actions []Action, optFns ...func(*Options)) (*ValidationOperator, error) {
	return newOperator(name, reg, actions, PassFailClassifier{}, optFns...)
}

// NewWarningAndFailureOperator creates the operator variant that classifies
// failed runs as warning or failure by suite naming convention. Action
// execution mechanics are identical to the plain variant.
func NewWarningAndFailureOperator(name string, reg *store.Registry, actions []Action, optFns ...func(*Options)) (*ValidationOperator, error) {
	return newOperator(name, reg, actions, WarningAndFailureClassifier{}, optFns...)
}

// Name returns the configured operator name.
func (v *ValidationOperator) Name() string { return v.name }

// ActionNames returns the declared action order.
func (v *ValidationOperator) ActionNames() []string {
	names := make([]string, len(v.actions))
	for i, a := range v.actions {
		names[i] = a.Name()
	}
	return names
}

// Run executes the action list strictly in declared order against result.
// A result without a run id is given a generated one; the input itself is
// never mutated.
//
// On the first action error the pipeline stops: the failing action is
// recorded as failed, the rest as skipped, and the error is returned
// alongside the Outcome. Completed writes are not rolled back.
func (v *ValidationOperator) Run(ctx context.Context, result *core.ValidationResult) (*Outcome, error) {
	if result == nil {
		return nil, fmt.Errorf("operator %s: result must not be nil", v.name)
	}

	res := *result
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}

	outcome := &Outcome{
		Operator: v.name,
		RunID:    res.RunID,
		Actions:  make([]ActionOutcome, len(v.actions)),
		Severity: v.classify.Classify(&res),
	}
	for i, a := range v.actions {
		outcome.Actions[i] = ActionOutcome{Name: a.Name(), Status: StatusPending}
	}

	start := time.Now()
	for i, a := range v.actions {
		v.logger.Debug("running action", "operator", v.name, "action", a.Name(), "run_id", res.RunID)
		if err := a.Run(ctx, &res, v.registry); err != nil {
			outcome.Actions[i] = ActionOutcome{Name: a.Name(), Status: StatusFailed, Err: err}
			for j := i + 1; j < len(v.actions); j++ {
				outcome.Actions[j].Status = StatusSkipped
			}
			runErr := fmt.Errorf("operator %s failed at action %s: %w", v.name, a.Name(), err)
			v.logger.Error("operator run failed", "operator", v.name, "action", a.Name(), "run_id", res.RunID, "duration", time.Since(start), "error", err)
			return outcome, runErr
		}
		outcome.Actions[i].Status = StatusCompleted
	}

	outcome.Success = outcome.Severity == SeverityPassed
	v.logger.Info("operator run completed", "operator", v.name, "run_id", res.RunID, "actions", len(v.actions), "severity", outcome.Severity.String(), "duration", time.Since(start))
	return outcome, nil
}
