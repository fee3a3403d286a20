// Package config binds the declarative YAML configuration to a fully wired
// store registry and operator set. Binding is strict: every backend kind
// must be a known variant, every path template must parse, and every action
// target must resolve in the registry. Any violation fails construction, so
// a misconfigured process refuses to start instead of failing mid-run.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/hupe1980/expectstore/backend"
	s3backend "github.com/hupe1980/expectstore/backend/s3"
	"github.com/hupe1980/expectstore/core"
	"github.com/hupe1980/expectstore/logging"
	"github.com/hupe1980/expectstore/operator"
	"github.com/hupe1980/expectstore/store"
	"github.com/hupe1980/expectstore/template"
)

// Backend kind names accepted in configuration. The variant set is closed
// and enumerated at compile time; there is no dynamic backend loading.
const (
	KindFilesystem = "filesystem"
	KindS3         = "s3"
	KindMemory     = "memory"
	KindBadger     = "badger"
)

// Operator kind names accepted in configuration.
const (
	OperatorActionList        = "action_list"
	OperatorWarningAndFailure = "warning_and_failure"
)

// Action kind names accepted in configuration.
const (
	ActionStoreValidationResult = "store_validation_result"
	ActionStoreEvaluationParams = "store_evaluation_params"
)

// BackendConfig selects and parameterizes one storage medium.
type BackendConfig struct {
	Kind string `yaml:"kind"`

	// BaseDir roots filesystem and badger backends.
	BaseDir string `yaml:"base_dir,omitempty"`

	// Bucket and Prefix address s3 backends.
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`
}

// StoreConfig describes one named store.
type StoreConfig struct {
	Backend  BackendConfig `yaml:"backend"`
	Template string        `yaml:"template"`
	Policy   string        `yaml:"policy,omitempty"` // overwrite (default) or append
	Codec    string        `yaml:"codec,omitempty"`  // json (default) or msgpack
}

// ActionConfig describes one action within an operator's ordered list.
type ActionConfig struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	TargetStore   string `yaml:"target_store"`
	Discriminator string `yaml:"discriminator,omitempty"`
	Section       string `yaml:"section,omitempty"`
}

// OperatorConfig describes one validation operator.
type OperatorConfig struct {
	Kind    string         `yaml:"kind"`
	Actions []ActionConfig `yaml:"actions"`
}

// Config is the root configuration document.
type Config struct {
	Stores    map[string]StoreConfig    `yaml:"stores"`
	Operators map[string]OperatorConfig `yaml:"validation_operators"`
}

// Load reads and parses a YAML configuration document.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

// LoadFile reads and parses the YAML configuration at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// BuildOptions carries runtime collaborators configuration alone cannot
// express.
type BuildOptions struct {
	// S3Client must be supplied when any store uses the s3 backend kind;
	// credentials and endpoints are runtime concerns, not configuration.
	S3Client s3backend.Client

	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Runtime is the bound result of a configuration: the immutable registry,
// the named operators, and any backend resources that need releasing at
// process exit.
type Runtime struct {
	Registry  *store.Registry
	Operators map[string]*operator.ValidationOperator

	closers []io.Closer
}

// Close releases backend resources (embedded databases). The runtime must
// not be used afterwards.
func (r *Runtime) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Build wires cfg into a Runtime. All configuration-shape errors surface
// here: unknown backend or action kinds, malformed templates, duplicate
// store names and dangling target store references all fail binding.
func Build(cfg *Config, optFns ...func(*BuildOptions)) (*Runtime, error) {
	opts := BuildOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	rt := &Runtime{
		Registry:  store.NewRegistry(),
		Operators: make(map[string]*operator.ValidationOperator),
	}

	for name, sc := range cfg.Stores {
		s, closer, err := buildStore(name, sc, &opts)
		if err != nil {
			rt.Close()
			return nil, err
		}
		if closer != nil {
			rt.closers = append(rt.closers, closer)
		}
		if err := rt.Registry.Register(s); err != nil {
			rt.Close()
			return nil, err
		}
	}

	for name, oc := range cfg.Operators {
		op, err := buildOperator(name, oc, rt.Registry, &opts)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.Operators[name] = op
	}

	return rt, nil
}

func buildStore(name string, sc StoreConfig, opts *BuildOptions) (*store.Store, io.Closer, error) {
	tmpl, err := template.Parse(sc.Template)
	if err != nil {
		return nil, nil, fmt.Errorf("config: store %s: %w", name, err)
	}

	var (
		be     core.Backend
		closer io.Closer
	)
	switch sc.Backend.Kind {
	case KindFilesystem:
		if sc.Backend.BaseDir == "" {
			return nil, nil, fmt.Errorf("config: store %s: filesystem backend requires base_dir", name)
		}
		be, err = backend.NewFilesystem(sc.Backend.BaseDir)
		if err != nil {
			return nil, nil, fmt.Errorf("config: store %s: %w", name, err)
		}
	case KindS3:
		if opts.S3Client == nil {
			return nil, nil, fmt.Errorf("config: store %s: s3 backend requires an injected client", name)
		}
		if sc.Backend.Bucket == "" {
			return nil, nil, fmt.Errorf("config: store %s: s3 backend requires bucket", name)
		}
		be = s3backend.New(opts.S3Client, sc.Backend.Bucket, sc.Backend.Prefix)
	case KindMemory:
		be = backend.NewMemory()
	case KindBadger:
		if sc.Backend.BaseDir == "" {
			return nil, nil, fmt.Errorf("config: store %s: badger backend requires base_dir", name)
		}
		bb, err := backend.NewBadger(backend.BadgerOptions{Dir: sc.Backend.BaseDir})
		if err != nil {
			return nil, nil, fmt.Errorf("config: store %s: %w", name, err)
		}
		be, closer = bb, bb
	default:
		return nil, nil, fmt.Errorf("config: store %s: unknown backend kind %q", name, sc.Backend.Kind)
	}

	codec, ok := store.CodecByName(sc.Codec)
	if !ok {
		return nil, nil, fmt.Errorf("config: store %s: unknown codec %q", name, sc.Codec)
	}

	var policy store.WritePolicy
	switch sc.Policy {
	case "", "overwrite":
		policy = store.PolicyOverwrite
	case "append":
		policy = store.PolicyAppendOnly
	default:
		return nil, nil, fmt.Errorf("config: store %s: unknown policy %q", name, sc.Policy)
	}

	s, err := store.New(name, be, tmpl, func(o *store.Options) {
		o.Codec = codec
		o.Policy = policy
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return s, closer, nil
}

func buildOperator(name string, oc OperatorConfig, reg *store.Registry, opts *BuildOptions) (*operator.ValidationOperator, error) {
	actions := make([]operator.Action, 0, len(oc.Actions))
	for _, ac := range oc.Actions {
		// Every target must resolve at bind time, not on first run.
		if _, err := reg.Resolve(ac.TargetStore); err != nil {
			return nil, fmt.Errorf("config: operator %s: action %s: %w", name, ac.Name, err)
		}
		switch ac.Kind {
		case ActionStoreValidationResult:
			actions = append(actions, operator.NewStoreValidationResultAction(ac.Name, ac.TargetStore,
				func(o *operator.StoreValidationResultOptions) {
					if ac.Discriminator != "" {
						o.Discriminator = ac.Discriminator
					}
					o.Section = ac.Section
				}))
		case ActionStoreEvaluationParams:
			actions = append(actions, operator.NewStoreEvaluationParamsAction(ac.Name, ac.TargetStore))
		default:
			return nil, fmt.Errorf("config: operator %s: unknown action kind %q", name, ac.Kind)
		}
	}

	withLogger := func(o *operator.Options) { o.Logger = opts.Logger }
	switch oc.Kind {
	case "", OperatorActionList:
		return operator.NewActionListOperator(name, reg, actions, withLogger)
	case OperatorWarningAndFailure:
		return operator.NewWarningAndFailureOperator(name, reg, actions, withLogger)
	default:
		return nil, fmt.Errorf("config: operator %s: unknown operator kind %q", name, oc.Kind)
	}
}
