package types

import (
	"fmt"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

// Predicate hints tell an external query engine how to cast a stored
// slot value before comparing it.
const (
	HintString  string = "str"
	HintInteger string = "int"
	HintFloat   string = "float"
	HintBoolean string = "bool"
	HintArray   string = "array"
)

// Type is the dump/load/predicate contract for one attribute type.
// Dump turns a typed value into its JSON safe representation and Load
// turns a stored representation back into the typed value. Load(Dump(x))
// must equal x for every legal x of the type.
type Type interface {
	Name() string
	Dump(value any) (any, error)
	Load(raw any) (any, error)
	PredicateHint() string
}

// Config carries per attribute settings into a type factory (the
// enumeration type reads values, multiple and strict from it).
type Config map[string]any

type Factory func(cfg Config) (Type, error)

// Registry maps type names to factories. The last registration for a
// given name wins, so callers can override the built in types.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]Factory{},
	}
}

func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

func (r *Registry) Resolve(name string, cfg Config) (Type, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, dmerrors.NewUnknownTypeError(
			fmt.Sprintf("no type descriptor registered for %q", name),
		)
	}

	return factory(cfg)
}

var defaultRegistry = newBuiltinRegistry()

// Default returns the shared registry preloaded with the built in types.
// Definitions use it unless a scoped registry is injected.
func Default() *Registry {
	return defaultRegistry
}

func newBuiltinRegistry() *Registry {
	r := NewRegistry()

	r.Register("string", func(Config) (Type, error) { return &stringType{}, nil })
	r.Register("integer", func(Config) (Type, error) { return &integerType{}, nil })
	r.Register("float", func(Config) (Type, error) { return &floatType{}, nil })
	r.Register("boolean", func(Config) (Type, error) { return &booleanType{}, nil })
	r.Register("array", func(Config) (Type, error) { return &arrayType{}, nil })
	r.Register("enumeration", newEnumerationFromConfig)

	return r
}
