// Package expectstore provides a high-level façade over the store registry
// and validation operator abstractions (stores, backends, operators &
// logging) enabling rapid construction of validation artifact pipelines.
// Most applications interact with this package by:
//  1. Creating an ExpectStore via New() (optionally overriding the default in-memory stores)
//  2. Registering validation operators (or loading everything via FromConfig)
//  3. Running an operator against each completed validation result
//
// The façade delegates persistence to store.Store/store.Registry and
// orchestration to operator.ValidationOperator while keeping setup and usage
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply durable backends
// (filesystem, S3, badger) and a structured logger via configuration.
package expectstore

import (
	"context"
	"fmt"

	"github.com/hupe1980/expectstore/backend"
	"github.com/hupe1980/expectstore/config"
	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/logging"
	"github.com/hupe1980/expectstore/operator"
	"github.com/hupe1980/expectstore/store"
	"github.com/hupe1980/expectstore/template"
)

// Default store names wired by New when no registry is supplied.
const (
	ExpectationsStoreName        = "expectations_store"
	ValidationsStoreName         = "validations_store"
	EvaluationParameterStoreName = "evaluation_parameter_store"
)

// DefaultOperatorName is the operator wired by New when none is supplied.
const DefaultOperatorName = "action_list_operator"

// Options configures the ExpectStore instance.
type Options struct {
	// Registry overrides the default in-memory store set.
	Registry *store.Registry

	// Operators overrides the default single action-list operator.
	Operators map[string]*operator.ValidationOperator

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// ExpectStore is the high-level façade aggregating the store registry and
// the configured validation operators.
type ExpectStore struct {
	registry  *store.Registry
	operators map[string]*operator.ValidationOperator
	logger    logging.Logger
	closer    interface{ Close() error }
}

// New creates a new ExpectStore instance with optional overrides. Any unset
// collaborator is initialized with an in-memory implementation: three
// standard stores (expectation suites, append-only validation results,
// evaluation parameters) and one action-list operator that persists results
// then extracted parameters.
func New(optFns ...func(o *Options)) (*ExpectStore, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		reg, err := defaultRegistry(opts.Logger)
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}

	if opts.Operators == nil {
		op, err := operator.NewActionListOperator(DefaultOperatorName, opts.Registry, []operator.Action{
			operator.NewStoreValidationResultAction("store_validation_result", ValidationsStoreName),
			operator.NewStoreEvaluationParamsAction("store_evaluation_params", EvaluationParameterStoreName),
		}, func(o *operator.Options) { o.Logger = opts.Logger })
		if err != nil {
			return nil, err
		}
		opts.Operators = map[string]*operator.ValidationOperator{DefaultOperatorName: op}
	}

	return &ExpectStore{
		registry:  opts.Registry,
		operators: opts.Operators,
		logger:    opts.Logger,
	}, nil
}

// FromConfig builds an ExpectStore from a parsed configuration document.
// Binding is fail-fast: any configuration-shape error aborts construction.
func FromConfig(cfg *config.Config, optFns ...func(o *config.BuildOptions)) (*ExpectStore, error) {
	rt, err := config.Build(cfg, optFns...)
	if err != nil {
		return nil, err
	}
	var logger logging.Logger = logging.NoOpLogger{}
	opts := config.BuildOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger != nil {
		logger = opts.Logger
	}
	return &ExpectStore{
		registry:  rt.Registry,
		operators: rt.Operators,
		logger:    logger,
		closer:    rt,
	}, nil
}

// FromConfigFile is FromConfig over the YAML document at path.
func FromConfigFile(path string, optFns ...func(o *config.BuildOptions)) (*ExpectStore, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg, optFns...)
}

// defaultRegistry wires the standard in-memory store set.
func defaultRegistry(logger logging.Logger) (*store.Registry, error) {
	reg := store.NewRegistry()

	defs := []struct {
		name     string
		template string
		policy   store.WritePolicy
	}{
		{ExpectationsStoreName, "expectations/{0}.json", store.PolicyOverwrite},
		{ValidationsStoreName, "validations/{0}/{1}/{2}/{3}.json", store.PolicyAppendOnly},
		{EvaluationParameterStoreName, "evaluation_parameters/{0}.json", store.PolicyOverwrite},
	}
	for _, def := range defs {
		s, err := store.New(def.name, backend.NewMemory(), template.MustParse(def.template), func(o *store.Options) {
			o.Policy = def.policy
			o.Logger = logger
		})
		if err != nil {
			return nil, err
		}
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Registry returns the immutable store registry.
func (e *ExpectStore) Registry() *store.Registry { return e.registry }

// Store resolves a store by name. Unknown names fail with
// core.ErrUnknownStore.
func (e *ExpectStore) Store(name string) (*store.Store, error) {
	return e.registry.Resolve(name)
}

// Operator returns the named validation operator.
func (e *ExpectStore) Operator(name string) (*operator.ValidationOperator, bool) {
	op, ok := e.operators[name]
	return op, ok
}

// RunOperator executes the named operator against result and returns its
// structured outcome.
func (e *ExpectStore) RunOperator(ctx context.Context, name string, result *core.ValidationResult) (*operator.Outcome, error) {
	op, ok := e.operators[name]
	if !ok {
		return nil, fmt.Errorf("expectstore: unknown validation operator %q", name)
	}
	return op.Run(ctx, result)
}

// Close releases backend resources held by configuration-built instances.
func (e *ExpectStore) Close() error {
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}
